// Package graceful coordinates application shutdown on SIGINT or SIGTERM.
package graceful

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

var shutdownTimeout = 10 * time.Second

// ShutdownFunc is a callback executed before the application exits.
type ShutdownFunc func() error

var (
	// ErrTimeoutExceeded is returned when callbacks fail to finish in time.
	ErrTimeoutExceeded = errors.New("failed to perform graceful shutdown: timeout exceeded")

	// ErrForceShutdown is returned when a second signal interrupts an
	// in-progress graceful shutdown.
	ErrForceShutdown = errors.New("failed to perform graceful shutdown: force shutdown occurred")
)

var (
	mutex     sync.Mutex
	callbacks []ShutdownFunc
	stop      = make(chan struct{}, 1)
	execOnErr = func(err error) {
		log.Printf("shutdown callback error: %v", err)
	}
)

// AddCallback registers a callback for execution before shutdown.
// Callbacks run in reverse registration order.
func AddCallback(fn ShutdownFunc) {
	mutex.Lock()
	callbacks = append(callbacks, fn)
	mutex.Unlock()
}

// ExecOnError sets the handler invoked when a shutdown callback errors.
func ExecOnError(cb func(err error)) {
	execOnErr = cb
}

// ShutdownNow initiates graceful shutdown without waiting for a signal.
func ShutdownNow() {
	select {
	case stop <- struct{}{}:
	default:
	}
}

// WaitShutdown blocks until SIGINT, SIGTERM or ShutdownNow, then runs the
// registered callbacks.
func WaitShutdown() error {
	notify := make(chan os.Signal, 1)
	signal.Notify(notify, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-notify:
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)

		mutex.Lock()
		defer mutex.Unlock()

		for i := len(callbacks) - 1; i >= 0; i-- {
			if err := callbacks[i](); err != nil && execOnErr != nil {
				execOnErr(err)
			}
		}
	}()

	select {
	case <-done:
		return nil
	case <-notify:
		return ErrForceShutdown
	case <-ctx.Done():
		return ErrTimeoutExceeded
	}
}

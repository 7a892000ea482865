package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/payvek/payvek-go/pkg/callback"
	"github.com/payvek/payvek-go/pkg/graceful"
)

var listenCommand = &cobra.Command{
	Use:   "listen",
	Short: "Runs a callback endpoint that verifies and logs processor notifications",
	Run:   listen,
}

func listen(_ *cobra.Command, _ []string) {
	cfg := resolveConfig()
	client, logger := resolveClient()

	handler := func(_ context.Context, payload gjson.Result) error {
		logger.Info().
			Str("payment_code", payload.Get("payment_code").Str).
			Str("status", payload.Get("status").Str).
			RawJSON("payload", []byte(payload.Raw)).
			Msg("verified callback received")

		return nil
	}

	srv := callback.New(cfg.Callback, client, handler,
		callback.WithLogger(&logger),
		callback.WithRecover(),
	)

	graceful.AddCallback(func() error {
		return srv.Shutdown(context.Background())
	})

	go func() {
		logger.Info().Str("address", srv.Address()).Str("path", cfg.Callback.Path).Msg("callback server started")

		if err := srv.Run(); err != nil {
			logger.Error().Err(err).Msg("callback server stopped")
			graceful.ShutdownNow()
		}
	}()

	if err := graceful.WaitShutdown(); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
		return
	}

	logger.Info().Msg("shutdown complete")
}

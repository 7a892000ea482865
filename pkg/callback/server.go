// Package callback runs an HTTP endpoint that receives payment status
// callbacks from the processor, verifies their authenticity and hands the
// payload to a user callback. Unverifiable requests get a 401, no exceptions.
package callback

import (
	"context"
	"io"
	"net/http"

	echo "github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/ziflex/lecho/v3"
)

type Config struct {
	Address string `yaml:"address" env:"CALLBACK_ADDRESS" env-default:"0.0.0.0" env-description:"Callback listen address"`
	Port    string `yaml:"port" env:"CALLBACK_PORT" env-default:"8080" env-description:"Callback listen port"`
	Path    string `yaml:"path" env:"CALLBACK_PATH" env-default:"/callback" env-description:"Route that receives processor callbacks"`
}

// Verifier confirms that a received request was signed by the processor.
// *payvek.Client satisfies it.
type Verifier interface {
	VerifyCallbackRequest(headers http.Header, endpoint string, body []byte, httpMethod, contentType string) bool
}

// Handler consumes a verified callback payload.
type Handler func(ctx context.Context, payload gjson.Result) error

type Server struct {
	echo     *echo.Echo
	address  string
	verifier Verifier
	handler  Handler
	logger   *zerolog.Logger
}

type Opt func(s *Server)

func New(cfg Config, verifier Verifier, handler Handler, opts ...Opt) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	nop := zerolog.Nop()

	s := &Server{
		echo:     e,
		address:  cfg.Address + ":" + cfg.Port,
		verifier: verifier,
		handler:  handler,
		logger:   &nop,
	}

	withHealthcheck(e)
	e.GET(cfg.Path, s.receive)
	e.POST(cfg.Path, s.receive)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func WithLogger(logger *zerolog.Logger) Opt {
	return func(s *Server) {
		l := logger.With().Str("channel", "callback_server").Logger()
		s.logger = &l

		s.echo.Logger = lecho.From(l)
		s.echo.Use(lecho.Middleware(lecho.Config{
			Logger: lecho.From(l, lecho.WithLevel(log.INFO)),
			Skipper: func(c echo.Context) bool {
				return c.Request().URL.Path == healthcheckPath
			},
		}))
	}
}

func WithRecover() Opt {
	return func(s *Server) {
		s.echo.Use(echomw.Recover())
	}
}

func (s *Server) receive(c echo.Context) error {
	req := c.Request()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	verified := s.verifier.VerifyCallbackRequest(
		req.Header,
		req.URL.Path,
		body,
		req.Method,
		req.Header.Get("Content-Type"),
	)

	if !verified {
		s.logger.Warn().
			Str("remote", c.RealIP()).
			Str("path", req.URL.Path).
			Msg("rejected unverified callback")

		return c.NoContent(http.StatusUnauthorized)
	}

	if s.handler != nil {
		if errHandle := s.handler(req.Context(), gjson.ParseBytes(body)); errHandle != nil {
			s.logger.Error().Err(errHandle).Msg("callback handler failed")

			return c.NoContent(http.StatusInternalServerError)
		}
	}

	return c.NoContent(http.StatusOK)
}

const healthcheckPath = "/health"

func withHealthcheck(e *echo.Echo) {
	e.GET(healthcheckPath, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Run() error {
	return s.echo.Start(s.address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Address() string {
	return s.address
}

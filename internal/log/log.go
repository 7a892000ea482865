package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string `yaml:"level" env:"LOGGER_LEVEL" env-default:"info" env-description:"Logging verbosity"`
	Pretty bool   `yaml:"pretty" env:"LOGGER_PRETTY" env-default:"true" env-description:"Enables human readable logging. Otherwise, uses json output"`
}

func New(cfg Config, serviceName, version string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	return zerolog.New(stdoutWriter(cfg.Pretty)).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", version).
		Logger()
}

func stdoutWriter(pretty bool) io.Writer {
	if pretty {
		return zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.StampMilli,
		}
	}

	return os.Stdout
}

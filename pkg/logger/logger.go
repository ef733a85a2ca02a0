package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type Options struct {
	Environment Environment
	Output      io.Writer
}

var DefaultOptions = Options{
	Environment: Development,
}

// Init configures the global zerolog logger. Production logs JSON at info
// level, anything else gets a console writer at debug level.
func Init(opts ...Options) {
	o := DefaultOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	out := o.Output
	if out == nil {
		out = os.Stderr
	}
	if o.Environment == Production {
		log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
}

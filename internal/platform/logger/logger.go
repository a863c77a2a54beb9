// Package logger owns the process root zerolog logger and the request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger under the project name
type Logger = zerolog.Logger

// Options shapes the root logger
type Options struct {
	Level   string
	Format  string // console or json
	Service string
	Caller  bool
	Writer  io.Writer
}

// envOptions is the LOG_* view of Options
type envOptions struct {
	Level   string `env:"LOG_LEVEL" envDefault:"debug"`
	Format  string `env:"LOG_FORMAT" envDefault:"console"`
	Service string `env:"LOG_SERVICE"`
	Caller  bool   `env:"LOG_CALLER"`
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
// unparsable values fall back to the defaults
func FromEnv() Options {
	e, err := env.ParseAs[envOptions]()
	if err != nil {
		e = envOptions{Level: "debug", Format: "console"}
	}
	return Options{
		Level:   strings.ToLower(strings.TrimSpace(e.Level)),
		Format:  strings.ToLower(strings.TrimSpace(e.Format)),
		Service: strings.TrimSpace(e.Service),
		Caller:  e.Caller,
	}
}

var (
	once sync.Once
	root zerolog.Logger
)

// Init builds the root logger; only the first call wins
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl, err := zerolog.ParseLevel(strings.ToLower(opt.Level))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.DebugLevel
		}
		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		c := zerolog.New(w).Level(lvl).With().Timestamp()
		if opt.Service != "" {
			c = c.Str("service", opt.Service)
		}
		if opt.Caller {
			c = c.Caller()
		}
		root = c.Logger()
	})
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	Init(FromEnv())
	return &root
}

// Named returns a root child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

// WithRequest stores a request_id tagged logger in ctx for C
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return Get().With().Str("request_id", reqID).Logger().WithContext(ctx)
}

// C returns the logger stored by WithRequest, or the root logger
func C(ctx context.Context) *Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return Get()
}

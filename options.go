package cmpres

import (
	"io"
	"log/slog"
)

// Options configures Decompress behavior.
type Options struct {
	// MaxPasses stops decoding after this many passes and returns the
	// intermediate buffer. Zero or negative decodes every pass.
	MaxPasses int
	// Logger receives per-pass diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options for default behavior: all passes, no logging.
func DefaultOptions() *Options {
	return &Options{
		Logger: discardLogger(),
	}
}

// PassLimitOptions returns options that stop after n passes.
func PassLimitOptions(n int) *Options {
	opts := DefaultOptions()
	opts.MaxPasses = n

	return opts
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return discardLogger()
	}

	return o.Logger
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package bundle

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"
)

// Option configures Bundle and Extract.
type Option func(*options)

type options struct {
	workers int
	logger  *log.Logger
}

// WithWorkers bounds the number of concurrent file reads. Values below one
// are treated as one.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}

// WithLogger sets the logger for per-file debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// DefaultWorkers is the read concurrency used when WithWorkers is not given.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), 8)
}

func newOptions(opts []Option) *options {
	o := &options{
		workers: DefaultWorkers(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

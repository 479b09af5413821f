package datamatch

import (
	"github.com/pckhoi/datamatch/filter"
	"github.com/pckhoi/datamatch/variator"
)

type options struct {
	variator variator.Variator
	filters  []filter.Filter
	logger   *Logger
}

// Option configures matcher construction.
//
// Options exist to keep the Match/Dedupe constructors small: variation
// expansion, filtering and logging are all opt-in.
type Option func(*options)

// WithVariator sets the variation generator used during scoring. Each
// pair is scored for every combination of left and right variants and
// the maximum is kept. The default yields only the record itself.
func WithVariator(v variator.Variator) Option {
	return func(o *options) {
		if v == nil {
			v = variator.NewIdentity()
		}
		o.variator = v
	}
}

// WithFilters appends pair filters. A pair rejected by any filter is
// dropped before scoring.
func WithFilters(filters ...filter.Filter) Option {
	return func(o *options) {
		o.filters = append(o.filters, filters...)
	}
}

// WithLogger sets the structured logger. The default discards all output.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		variator: variator.NewIdentity(),
		logger:   NoopLogger(),
	}
}

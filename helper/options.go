package helper

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/chouseknecht/openshift-restclient-go/validation"
)

const (
	// DefaultWaitTimeout bounds readiness polling when callers do not
	// supply their own timeout.
	DefaultWaitTimeout = 60 * time.Second

	// DefaultPollInterval is the cadence of readiness polling.
	DefaultPollInterval = 2 * time.Second
)

// Option is a functional option for configuring a Helper.
type Option func(*Helper)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(log logr.Logger) Option {
	return func(h *Helper) {
		h.log = log
	}
}

// WithValidator installs an admission validator consulted before Create
// and Patch.
func WithValidator(v validation.Validator) Option {
	return func(h *Helper) {
		h.validator = v
	}
}

// WithPollInterval overrides the readiness polling cadence. Intended for
// tests; the observable default is two seconds between polls.
func WithPollInterval(interval time.Duration) Option {
	return func(h *Helper) {
		if interval > 0 {
			h.pollInterval = interval
		}
	}
}

// WriteOptions contains options for write requests.
type WriteOptions struct {
	// Wait enables best-effort readiness polling after the write.
	Wait bool

	// Timeout bounds the polling. Exceeding it is not an error; the last
	// observation wins.
	Timeout time.Duration
}

// WriteOption is some configuration that modifies options for a write
// request.
type WriteOption interface {
	// ApplyToWrite applies this configuration to the given write options.
	ApplyToWrite(*WriteOptions)
}

// WithWait enables readiness polling bounded by the given timeout. A
// non-positive timeout selects DefaultWaitTimeout.
func WithWait(timeout time.Duration) WriteOption {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	return waitFor{timeout: timeout}
}

type waitFor struct {
	timeout time.Duration
}

func (w waitFor) ApplyToWrite(o *WriteOptions) {
	o.Wait = true
	o.Timeout = w.timeout
}

func newWriteOptions(opts []WriteOption) WriteOptions {
	options := WriteOptions{Timeout: DefaultWaitTimeout}
	for _, opt := range opts {
		opt.ApplyToWrite(&options)
	}
	return options
}

package schema

import "github.com/valkit/valkit/logging"

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used during registration and validation.
// Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithIncludeWarnings controls whether warnings are kept in results.
// Defaults to true.
func WithIncludeWarnings(include bool) Option {
	return func(v *Validator) {
		v.IncludeWarnings = include
	}
}

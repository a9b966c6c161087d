package app

type Option func(*controller)

// WithCompatStatus answers every catalog failure with HTTP 200 and an error
// envelope, and forwards parameters without validation.
func WithCompatStatus(compat bool) Option {
	return func(c *controller) {
		c.compat = compat
	}
}

func WithMaxHomeLimit(limit int) Option {
	return func(c *controller) {
		c.maxHomeLimit = limit
	}
}

// WithCORSOrigins sets the origins allowed to call the API, "*" allows any.
func WithCORSOrigins(origins ...string) Option {
	return func(c *controller) {
		c.corsOrigins = origins
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *controller) {
		c.metrics = metrics
	}
}

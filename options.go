package malariasim

// Option configures a Population or InterventionPolicy at construction.
type Option func(*options)

type options struct {
	rng Random
}

// WithRandom injects the randomness source. Share one source between the
// population and the policy to reproduce a run from a single seed.
func WithRandom(r Random) Option {
	return func(o *options) {
		o.rng = r
	}
}

func buildOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		r, err := defaultRandom()
		if err != nil {
			return options{}, err
		}
		o.rng = r
	}
	return o, nil
}

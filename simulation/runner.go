package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comalice/malariasim"
)

// Observer receives each day's record after the day has been committed.
type Observer interface {
	OnDay(ctx context.Context, rec DayRecord) error
}

// Config configures a Runner.
type Config struct {
	Days     int           // Number of days Run simulates
	TickRate time.Duration // Delay between days; 0 runs back to back
}

// Option applies configuration to a Runner.
type Option func(*Runner)

// WithObserver adds an observer. Observers are notified in registration order.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// WithTickRate paces Run on a ticker, overriding Config.TickRate.
func WithTickRate(d time.Duration) Option {
	return func(r *Runner) {
		r.tickRate = d
	}
}

// Runner drives one Population and one InterventionPolicy day by day.
// It is not safe for concurrent use.
type Runner struct {
	pop       *malariasim.Population
	policy    *malariasim.InterventionPolicy
	days      int
	tickRate  time.Duration
	day       int
	history   History
	observers []Observer
}

// NewRunner creates a runner. The runner takes over pop and policy; callers
// should not mutate pop while it runs.
func NewRunner(pop *malariasim.Population, policy *malariasim.InterventionPolicy, cfg Config, opts ...Option) (*Runner, error) {
	if pop == nil {
		return nil, errors.New("population is required")
	}
	if policy == nil {
		return nil, errors.New("intervention policy is required")
	}
	if cfg.Days < 0 {
		return nil, &malariasim.ParameterError{Name: "days", Value: float64(cfg.Days), Reason: "must not be negative"}
	}
	r := &Runner{
		pop:      pop,
		policy:   policy,
		days:     cfg.Days,
		tickRate: cfg.TickRate,
		history:  make(History, 0, cfg.Days),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tickRate < 0 {
		return nil, &malariasim.ParameterError{Name: "tick_rate", Value: float64(r.tickRate), Reason: "must not be negative"}
	}
	return r, nil
}

// Population returns the population being driven.
func (r *Runner) Population() *malariasim.Population {
	return r.pop
}

// Day returns the number of days simulated so far.
func (r *Runner) Day() int {
	return r.day
}

// History returns a copy of the records so far.
func (r *Runner) History() History {
	out := make(History, len(r.history))
	copy(out, r.history)
	return out
}

// Step simulates exactly one day and notifies observers.
func (r *Runner) Step(ctx context.Context) (DayRecord, error) {
	if err := ctx.Err(); err != nil {
		return DayRecord{}, err
	}
	rec := r.processDay()
	r.history = append(r.history, rec)

	for _, o := range r.observers {
		if err := o.OnDay(ctx, rec); err != nil {
			return rec, fmt.Errorf("day %d: observer: %w", rec.Day, err)
		}
	}
	return rec, nil
}

// Run simulates the remaining configured days and returns the full history.
// On cancellation it returns the days completed so far together with ctx.Err().
func (r *Runner) Run(ctx context.Context) (History, error) {
	if r.tickRate <= 0 {
		for r.day < r.days {
			if _, err := r.Step(ctx); err != nil {
				return r.History(), err
			}
		}
		return r.History(), nil
	}

	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	for r.day < r.days {
		select {
		case <-ctx.Done():
			return r.History(), ctx.Err()
		case <-ticker.C:
			if _, err := r.Step(ctx); err != nil {
				return r.History(), err
			}
		}
	}
	return r.History(), nil
}

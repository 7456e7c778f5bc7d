// Package extensibility holds small composable simulation.Observer implementations.
package extensibility

import (
	"context"
	"errors"

	"github.com/comalice/malariasim/simulation"
)

// ObserverFunc adapts a plain function to simulation.Observer.
type ObserverFunc func(ctx context.Context, rec simulation.DayRecord) error

// OnDay calls f.
func (f ObserverFunc) OnDay(ctx context.Context, rec simulation.DayRecord) error {
	if f == nil {
		return nil
	}
	return f(ctx, rec)
}

// MultiObserver notifies every observer in order. All observers see the day
// even if an earlier one fails; the errors are joined.
type MultiObserver []simulation.Observer

func (m MultiObserver) OnDay(ctx context.Context, rec simulation.DayRecord) error {
	var errs []error
	for _, o := range m {
		if o == nil {
			continue
		}
		if err := o.OnDay(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

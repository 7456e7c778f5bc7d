package extensibility

import (
	"context"
	"log"

	"github.com/comalice/malariasim/simulation"
)

// LoggingObserver prints one line per day and then delegates to an optional inner observer.
type LoggingObserver struct {
	logger *log.Logger
	inner  simulation.Observer
}

// NewLoggingObserver creates a LoggingObserver. A nil logger uses the standard logger;
// inner may be nil.
func NewLoggingObserver(logger *log.Logger, inner simulation.Observer) *LoggingObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingObserver{logger: logger, inner: inner}
}

// OnDay logs "Day N: Infected = X" before delegating.
func (o *LoggingObserver) OnDay(ctx context.Context, rec simulation.DayRecord) error {
	o.logger.Printf("Day %d: Infected = %d", rec.Day, rec.Infected)
	if o.inner == nil {
		return nil
	}
	return o.inner.OnDay(ctx, rec)
}

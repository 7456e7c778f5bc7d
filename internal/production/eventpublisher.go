package production

import (
	"context"

	"github.com/comalice/malariasim/simulation"
)

// PublishedDay bundles a day record with the run it belongs to.
type PublishedDay struct {
	RunID  string
	Record simulation.DayRecord
}

// ChannelPublisher is a simulation.Observer that forwards day records to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	runID string
	ch    chan<- PublishedDay
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(runID string, ch chan<- PublishedDay) *ChannelPublisher {
	return &ChannelPublisher{runID: runID, ch: ch}
}

func (p *ChannelPublisher) OnDay(ctx context.Context, rec simulation.DayRecord) error {
	select {
	case p.ch <- PublishedDay{RunID: p.runID, Record: rec}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // Non-blocking drop
	}
}

// Close closes the output channel. Call it only after the run has finished;
// OnDay after Close panics.
func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

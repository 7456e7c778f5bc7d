package simulation

import "github.com/comalice/malariasim"

// DayRecord is the outcome of one simulated day.
type DayRecord struct {
	Day            int               `json:"day" yaml:"day"` // 1-indexed
	Infected       int               `json:"infected" yaml:"infected"`
	Census         malariasim.Census `json:"census" yaml:"census"`
	NewlyProtected int               `json:"newlyProtected" yaml:"newlyProtected"`
	Medicated      int               `json:"medicated" yaml:"medicated"`
}

// History is the ordered sequence of day records of a run.
type History []DayRecord

// Infected returns the infected count of each day in order.
func (h History) Infected() []int {
	out := make([]int, len(h))
	for i, rec := range h {
		out[i] = rec.Infected
	}
	return out
}

// Peak returns the first day with the highest infected count.
func (h History) Peak() (DayRecord, bool) {
	if len(h) == 0 {
		return DayRecord{}, false
	}
	peak := h[0]
	for _, rec := range h[1:] {
		if rec.Infected > peak.Infected {
			peak = rec
		}
	}
	return peak, true
}

// Final returns the last recorded day.
func (h History) Final() (DayRecord, bool) {
	if len(h) == 0 {
		return DayRecord{}, false
	}
	return h[len(h)-1], true
}

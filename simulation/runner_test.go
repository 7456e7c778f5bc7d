package simulation

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/comalice/malariasim"
	"github.com/comalice/malariasim/testutil"
)

type recordingObserver struct {
	records []DayRecord
	failOn  int
}

func (o *recordingObserver) OnDay(ctx context.Context, rec DayRecord) error {
	o.records = append(o.records, rec)
	if o.failOn != 0 && rec.Day == o.failOn {
		return errors.New("observer failed")
	}
	return nil
}

func newTestRunner(t *testing.T, seed uint64, days int, opts ...Option) *Runner {
	t.Helper()
	rng := malariasim.NewRandom(seed)
	pop, err := malariasim.NewPopulation(1000, 10, 0.05, 0.01, malariasim.WithRandom(rng))
	if err != nil {
		t.Fatal(err)
	}
	policy, err := malariasim.NewInterventionPolicy(0.2, 0.5, malariasim.WithRandom(rng))
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(pop, policy, Config{Days: days}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// TestRunnerCreation tests argument validation
func TestRunnerCreation(t *testing.T) {
	rng := malariasim.NewRandom(1)
	pop, _ := malariasim.NewPopulation(10, 1, 0.1, 0.1, malariasim.WithRandom(rng))
	policy, _ := malariasim.NewInterventionPolicy(0, 0, malariasim.WithRandom(rng))

	if _, err := NewRunner(nil, policy, Config{Days: 1}); err == nil {
		t.Error("expected error for nil population")
	}
	if _, err := NewRunner(pop, nil, Config{Days: 1}); err == nil {
		t.Error("expected error for nil policy")
	}
	if _, err := NewRunner(pop, policy, Config{Days: -1}); !errors.Is(err, malariasim.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative days, got %v", err)
	}
	if _, err := NewRunner(pop, policy, Config{Days: 1, TickRate: -time.Second}); !errors.Is(err, malariasim.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative tick rate, got %v", err)
	}
	if _, err := NewRunner(pop, policy, Config{Days: 1}, WithTickRate(-time.Millisecond)); !errors.Is(err, malariasim.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative tick rate option, got %v", err)
	}
}

func TestRunProducesOneRecordPerDay(t *testing.T) {
	obs := &recordingObserver{}
	r := newTestRunner(t, 42, 100, WithObserver(obs))

	history, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 100 {
		t.Fatalf("expected 100 records, got %d", len(history))
	}
	for i, rec := range history {
		if rec.Day != i+1 {
			t.Errorf("record %d has day %d", i, rec.Day)
		}
		if rec.Census.Total() != 1000 {
			t.Errorf("day %d census total %d", rec.Day, rec.Census.Total())
		}
		if rec.Infected != rec.Census.Infected {
			t.Errorf("day %d infected mismatch", rec.Day)
		}
	}
	if !reflect.DeepEqual(obs.records, []DayRecord(history)) {
		t.Error("observer should see every record in order")
	}
	if len(history.Infected()) != 100 {
		t.Error("Infected() should return one count per day")
	}
}

func TestRunZeroDays(t *testing.T) {
	obs := &recordingObserver{}
	r := newTestRunner(t, 5, 0, WithObserver(obs))
	before := r.Population().States()

	history, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d records", len(history))
	}
	if len(obs.records) != 0 {
		t.Errorf("observer called %d times for a zero-day run", len(obs.records))
	}
	if r.Day() != 0 {
		t.Errorf("expected day 0, got %d", r.Day())
	}
	if !reflect.DeepEqual(before, r.Population().States()) {
		t.Error("zero-day run must not touch the population")
	}
	if _, ok := history.Peak(); ok {
		t.Error("Peak of an empty history should report false")
	}
}

func TestRunIsReproducible(t *testing.T) {
	a, err := newTestRunner(t, 7, 50).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestRunner(t, 7, 50).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Infected(), b.Infected()) {
		t.Error("equal seeds should give equal infected sequences")
	}
}

// The day order is bed nets, update, medication. With full coverage every
// susceptible is protected before anyone can be infected.
func TestStepPhaseOrder(t *testing.T) {
	rng := &testutil.ScriptedRandom{Samples: [][]int{{0}}, Fallback: 0}
	pop, err := malariasim.NewPopulation(5, 1, 1, 0, malariasim.WithRandom(rng))
	if err != nil {
		t.Fatal(err)
	}
	policy, err := malariasim.NewInterventionPolicy(1, 1, malariasim.WithRandom(rng))
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(pop, policy, Config{Days: 1})
	if err != nil {
		t.Fatal(err)
	}

	rec, err := r.Step(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := malariasim.Census{Protected: 4, Recovered: 1}
	if rec.Census != want {
		t.Errorf("census = %+v, want %+v", rec.Census, want)
	}
	if rec.NewlyProtected != 4 || rec.Medicated != 1 {
		t.Errorf("protected=%d medicated=%d, want 4 and 1", rec.NewlyProtected, rec.Medicated)
	}
}

func TestRunStopsOnObserverError(t *testing.T) {
	obs := &recordingObserver{failOn: 3}
	r := newTestRunner(t, 1, 10, WithObserver(obs))

	history, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("expected observer error")
	}
	if len(history) != 3 {
		t.Errorf("expected 3 committed days, got %d", len(history))
	}
}

func TestRunHonorsCancellationBetweenDays(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	obs := observerFunc(func(ctx context.Context, rec DayRecord) error {
		if rec.Day == 5 {
			cancel()
		}
		return nil
	})
	r := newTestRunner(t, 1, 20, WithObserver(obs))

	history, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(history) != 5 {
		t.Errorf("expected 5 complete days, got %d", len(history))
	}
	if r.Population().Census().Total() != 1000 {
		t.Error("population must stay consistent after cancellation")
	}
}

func TestRunWithTickRate(t *testing.T) {
	rng := malariasim.NewRandom(3)
	pop, _ := malariasim.NewPopulation(100, 5, 0.1, 0.1, malariasim.WithRandom(rng))
	policy, _ := malariasim.NewInterventionPolicy(0.1, 0.1, malariasim.WithRandom(rng))
	r, err := NewRunner(pop, policy, Config{Days: 5, TickRate: 2 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	history, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 5 {
		t.Errorf("expected 5 days, got %d", len(history))
	}
	if elapsed := time.Since(start); elapsed < 8*time.Millisecond {
		t.Errorf("paced run finished too fast: %v", elapsed)
	}
}

func TestRunResumesAfterStep(t *testing.T) {
	r := newTestRunner(t, 9, 4)
	if _, err := r.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	history, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 4 || r.Day() != 4 {
		t.Errorf("expected 4 days total, got %d (day %d)", len(history), r.Day())
	}
}

func TestHistoryPeakAndFinal(t *testing.T) {
	h := History{{Day: 1, Infected: 3}, {Day: 2, Infected: 9}, {Day: 3, Infected: 9}, {Day: 4, Infected: 2}}
	peak, ok := h.Peak()
	if !ok || peak.Day != 2 {
		t.Errorf("peak = %+v, want day 2", peak)
	}
	final, ok := h.Final()
	if !ok || final.Day != 4 {
		t.Errorf("final = %+v, want day 4", final)
	}
	if _, ok := History(nil).Peak(); ok {
		t.Error("empty history has no peak")
	}
}

type observerFunc func(ctx context.Context, rec DayRecord) error

func (f observerFunc) OnDay(ctx context.Context, rec DayRecord) error { return f(ctx, rec) }

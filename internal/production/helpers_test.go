package production

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/comalice/malariasim"
	"github.com/comalice/malariasim/internal/scenario"
)

func testResult(t *testing.T, seed uint64) RunResult {
	t.Helper()
	s := scenario.Default()
	s.Days = 12
	s.Population.Size = 200
	s.Population.InitialInfected = 5
	s.Population.TransmissionRate = 0.3
	s.Population.RecoveryRate = 0.1
	s.Seed = seed

	runner, err := s.Factory()(malariasim.NewRandom(seed))
	require.NoError(t, err)
	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	history, err := runner.Run(context.Background())
	require.NoError(t, err)
	return NewRunResult(s, seed, history, started, started.Add(time.Second))
}

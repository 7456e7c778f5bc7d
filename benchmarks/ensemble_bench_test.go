package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/comalice/malariasim/simulation"
)

func BenchmarkEnsemble(b *testing.B) {
	s := GenScenario(10_000, 50)
	for _, workers := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			ens := simulation.Ensemble{Replicates: 8, Workers: workers, BaseSeed: 1}
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				runs, err := ens.Run(context.Background(), s.Factory())
				if err != nil {
					b.Fatal(err)
				}
				_ = simulation.Summarize(runs)
			}
			b.ReportMetric(float64(ens.Replicates*b.N)/b.Elapsed().Seconds(), "runs/s")
		})
	}
}

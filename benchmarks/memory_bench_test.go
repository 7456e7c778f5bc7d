// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/comalice/malariasim"
)

func BenchmarkMemoryPopulation(b *testing.B) {
	for _, n := range Sizes {
		b.Run(fmt.Sprintf("size=%d", n), func(b *testing.B) {
			numPops := 10
			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			pops := make([]*malariasim.Population, numPops)
			for i := 0; i < numPops; i++ {
				pops[i], _ = GenPopulation(n, uint64(i))
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			bytesPerPop := (after.TotalAlloc - before.TotalAlloc) / uint64(numPops)
			b.ReportMetric(float64(bytesPerPop)/1024, "KB/population")
			b.ReportMetric(float64(bytesPerPop)/float64(n), "B/individual")
			runtime.KeepAlive(pops)
		})
	}
}

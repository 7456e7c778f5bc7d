package malariasim

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/comalice/malariasim"
	"github.com/comalice/malariasim/internal/extensibility"
	"github.com/comalice/malariasim/internal/production"
	"github.com/comalice/malariasim/internal/scenario"
	"github.com/comalice/malariasim/simulation"
)

func runSingle(ctx context.Context, cfg Config, s scenario.Scenario, out io.Writer, logger *log.Logger) error {
	var opts []simulation.Option
	if !cfg.Quiet {
		opts = append(opts, simulation.WithObserver(extensibility.NewLoggingObserver(log.New(out, "", 0), nil)))
	}
	if cfg.TickRate > 0 {
		opts = append(opts, simulation.WithTickRate(cfg.TickRate))
	}

	runner, err := s.Factory(opts...)(malariasim.NewRandom(s.Seed))
	if err != nil {
		return fmt.Errorf("build runner: %w", err)
	}
	started := time.Now()
	history, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	result := production.NewRunResult(s, s.Seed, history, started, time.Now())
	logger.Printf("run %s finished %d days in %v", result.RunID, len(history), result.FinishedAt.Sub(result.StartedAt))

	csvOut, err := production.NewCSVPersister(cfg.OutDir, "")
	if err != nil {
		return err
	}
	if err := csvOut.Save(ctx, result); err != nil {
		return err
	}
	fmt.Fprintf(out, "Simulation results saved to %s\n", csvOut.Path())

	if path := chartPath(cfg); path != "" {
		if err := production.NewChartVisualizer().SaveChart(path, history); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		fmt.Fprintf(out, "Chart saved to %s\n", path)
	}
	if err := persist(ctx, cfg, out, []production.RunResult{result}); err != nil {
		return err
	}

	printSummary(out, s, history)
	return nil
}

func runEnsemble(ctx context.Context, cfg Config, s scenario.Scenario, out io.Writer, logger *log.Logger) error {
	var opts []simulation.Option
	if cfg.TickRate > 0 {
		opts = append(opts, simulation.WithTickRate(cfg.TickRate))
	}
	ens := simulation.Ensemble{Replicates: cfg.Replicates, Workers: cfg.Workers, BaseSeed: s.Seed}

	started := time.Now()
	runs, err := ens.Run(ctx, s.Factory(opts...))
	if err != nil {
		return fmt.Errorf("ensemble: %w", err)
	}
	finished := time.Now()
	logger.Printf("ensemble of %d replicates finished in %v", len(runs), finished.Sub(started))

	summary := simulation.Summarize(runs)
	if !cfg.Quiet {
		p := message.NewPrinter(language.English)
		for _, d := range summary {
			p.Fprintf(out, "Day %d: Infected = %.1f ± %.1f (min %d, max %d)\n", d.Day, d.Mean, d.StdDev, d.Min, d.Max)
		}
	}

	results := make([]production.RunResult, len(runs))
	for i, h := range runs {
		rs := s
		rs.Seed = s.Seed + uint64(i)
		results[i] = production.NewRunResult(rs, rs.Seed, h, started, finished)

		csvOut, err := production.NewCSVPersister(cfg.OutDir, fmt.Sprintf("%s_%d", production.DefaultCSVName, i))
		if err != nil {
			return err
		}
		if err := csvOut.Save(ctx, results[i]); err != nil {
			return err
		}
	}
	csvOut, err := production.NewCSVPersister(cfg.OutDir, "")
	if err != nil {
		return err
	}
	fn, err := csvOut.SaveSummary("", summary)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Simulation results saved to %s\n", fn)

	if path := chartPath(cfg); path != "" {
		if err := production.NewChartVisualizer().SaveSummaryChart(path, summary); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		fmt.Fprintf(out, "Chart saved to %s\n", path)
	}
	return persist(ctx, cfg, out, results)
}

// persist writes full run results to the optional file format and SQLite store.
func persist(ctx context.Context, cfg Config, out io.Writer, results []production.RunResult) error {
	var persisters []production.Persister
	switch strings.ToLower(cfg.Format) {
	case "yaml":
		p, err := production.NewYAMLPersister(cfg.OutDir)
		if err != nil {
			return err
		}
		persisters = append(persisters, p)
	case "json":
		p, err := production.NewJSONPersister(cfg.OutDir)
		if err != nil {
			return err
		}
		persisters = append(persisters, p)
	}
	if cfg.SQLite != "" {
		store, err := production.OpenSQLiteStore(cfg.SQLite)
		if err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
		defer store.Close()
		persisters = append(persisters, store)
	}

	for _, p := range persisters {
		for _, r := range results {
			if err := p.Save(ctx, r); err != nil {
				return fmt.Errorf("save run %s: %w", r.RunID, err)
			}
		}
	}
	if len(persisters) > 0 {
		for _, r := range results {
			fmt.Fprintf(out, "Run %s saved\n", r.RunID)
		}
	}
	return nil
}

func listRuns(ctx context.Context, path string, out io.Writer) error {
	store, err := production.OpenSQLiteStore(path)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	for _, r := range runs {
		p.Fprintf(out, "%s  %s  %s  seed=%d  days=%d  peak=%d\n",
			r.StartedAt.Format(time.RFC3339), r.RunID, r.ScenarioID, r.Seed, r.Days, r.Peak)
	}
	return nil
}

func printSummary(out io.Writer, s scenario.Scenario, h simulation.History) {
	peak, ok := h.Peak()
	if !ok {
		return
	}
	final, _ := h.Final()
	size := float64(s.Population.Size)

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "Peak: %d infected on day %d (%.1f%% of %d)\n",
		peak.Infected, peak.Day, 100*float64(peak.Infected)/size, s.Population.Size)
	p.Fprintf(out, "Final: %d infected, %d recovered, %d protected, %d susceptible\n",
		final.Census.Infected, final.Census.Recovered, final.Census.Protected, final.Census.Susceptible)
}

// Package malariasim implements the malariasim command: configuration from
// environment and flags, one run or an ensemble, and the output files.
package malariasim

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/comalice/malariasim"
	"github.com/comalice/malariasim/internal/config"
	"github.com/comalice/malariasim/internal/scenario"
)

// Config holds command configuration.
type Config struct {
	ScenarioFile string        `env:"MALARIASIM_SCENARIO_FILE"`
	PopSize      int           `env:"MALARIASIM_POP_SIZE"      envDefault:"1000"`
	InitInfected int           `env:"MALARIASIM_INIT_INFECTED" envDefault:"10"`
	TransRate    float64       `env:"MALARIASIM_TRANS_RATE"    envDefault:"0.05"`
	RecovRate    float64       `env:"MALARIASIM_RECOV_RATE"    envDefault:"0.01"`
	Days         int           `env:"MALARIASIM_DAYS"          envDefault:"100"`
	BedNets      float64       `env:"MALARIASIM_BED_NETS"      envDefault:"0.2"`
	Medication   float64       `env:"MALARIASIM_MEDICATION"    envDefault:"0.5"`
	Seed         uint64        `env:"MALARIASIM_SEED"`
	OutDir       string        `env:"MALARIASIM_OUT_DIR"       envDefault:"data"`
	Chart        string        `env:"MALARIASIM_CHART"`
	SQLite       string        `env:"MALARIASIM_SQLITE"`
	Format       string        `env:"MALARIASIM_FORMAT"`
	Replicates   int           `env:"MALARIASIM_REPLICATES"    envDefault:"1"`
	Workers      int           `env:"MALARIASIM_WORKERS"`
	TickRate     time.Duration `env:"MALARIASIM_TICK_RATE"`
	Quiet        bool          `env:"MALARIASIM_QUIET"`
	ListRuns     bool          `env:"MALARIASIM_LIST_RUNS"`
	explicit     map[string]bool
}

// scenarioEnv maps scenario flags to the environment variables that set them.
var scenarioEnv = map[string]string{
	"pop_size":      "MALARIASIM_POP_SIZE",
	"init_infected": "MALARIASIM_INIT_INFECTED",
	"trans_rate":    "MALARIASIM_TRANS_RATE",
	"recov_rate":    "MALARIASIM_RECOV_RATE",
	"days":          "MALARIASIM_DAYS",
	"bed_nets":      "MALARIASIM_BED_NETS",
	"medication":    "MALARIASIM_MEDICATION",
	"seed":          "MALARIASIM_SEED",
}

// ParseConfig loads the environment and then parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ScenarioFile, "scenario", cfg.ScenarioFile, "scenario file (.yaml, .yml or .json); MALARIASIM_* variables and then explicit flags override its values")
	fs.IntVar(&cfg.PopSize, "pop_size", cfg.PopSize, "population size")
	fs.IntVar(&cfg.InitInfected, "init_infected", cfg.InitInfected, "initial number of infected individuals")
	fs.Float64Var(&cfg.TransRate, "trans_rate", cfg.TransRate, "daily transmission probability")
	fs.Float64Var(&cfg.RecovRate, "recov_rate", cfg.RecovRate, "daily recovery probability")
	fs.IntVar(&cfg.Days, "days", cfg.Days, "number of days to simulate")
	fs.Float64Var(&cfg.BedNets, "bed_nets", cfg.BedNets, "bed net coverage")
	fs.Float64Var(&cfg.Medication, "medication", cfg.Medication, "medication effectiveness")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 draws a fresh one)")
	fs.StringVar(&cfg.OutDir, "out_dir", cfg.OutDir, "directory for result files")
	fs.StringVar(&cfg.Chart, "chart", cfg.Chart, "write a PNG chart to this path (bare file names go in -out_dir)")
	fs.StringVar(&cfg.SQLite, "sqlite", cfg.SQLite, "store runs in this SQLite database")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "also write the full run result as yaml or json")
	fs.IntVar(&cfg.Replicates, "replicates", cfg.Replicates, "number of independent runs")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent replicates (0 runs all at once)")
	fs.DurationVar(&cfg.TickRate, "tick_rate", cfg.TickRate, "delay between days")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress per-day output")
	fs.BoolVar(&cfg.ListRuns, "list_runs", cfg.ListRuns, "list runs stored in -sqlite and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.explicit = map[string]bool{}
	for name, key := range scenarioEnv {
		if _, ok := os.LookupEnv(key); ok {
			cfg.explicit[name] = true
		}
	}
	fs.Visit(func(f *flag.Flag) {
		cfg.explicit[f.Name] = true
	})
	return cfg, nil
}

// Scenario resolves the run scenario. Without a scenario file it is built from the
// flat fields; with one, the file is the base and values set through the
// environment or explicit flags override it.
func (cfg Config) Scenario() (scenario.Scenario, error) {
	var s scenario.Scenario
	if cfg.ScenarioFile == "" {
		s = scenario.Default()
		s.Days = cfg.Days
		s.Seed = cfg.Seed
		s.Population = scenario.PopulationParams{
			Size:             cfg.PopSize,
			InitialInfected:  cfg.InitInfected,
			TransmissionRate: cfg.TransRate,
			RecoveryRate:     cfg.RecovRate,
		}
		s.Interventions = scenario.InterventionParams{
			BedNetCoverage:          cfg.BedNets,
			MedicationEffectiveness: cfg.Medication,
		}
		return s, s.Validate()
	}

	s, err := scenario.Load(cfg.ScenarioFile)
	if err != nil {
		return scenario.Scenario{}, err
	}
	set := cfg.explicit
	if set["pop_size"] {
		s.Population.Size = cfg.PopSize
	}
	if set["init_infected"] {
		s.Population.InitialInfected = cfg.InitInfected
	}
	if set["trans_rate"] {
		s.Population.TransmissionRate = cfg.TransRate
	}
	if set["recov_rate"] {
		s.Population.RecoveryRate = cfg.RecovRate
	}
	if set["days"] {
		s.Days = cfg.Days
	}
	if set["bed_nets"] {
		s.Interventions.BedNetCoverage = cfg.BedNets
	}
	if set["medication"] {
		s.Interventions.MedicationEffectiveness = cfg.Medication
	}
	if set["seed"] {
		s.Seed = cfg.Seed
	}
	return s, s.Validate()
}

func (cfg Config) validate() error {
	switch strings.ToLower(cfg.Format) {
	case "", "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", cfg.Format)
	}
	if cfg.Replicates <= 0 {
		return &malariasim.ParameterError{Name: "replicates", Value: float64(cfg.Replicates), Reason: "must be positive"}
	}
	if cfg.Workers < 0 {
		return &malariasim.ParameterError{Name: "workers", Value: float64(cfg.Workers), Reason: "must not be negative"}
	}
	if cfg.TickRate < 0 {
		return &malariasim.ParameterError{Name: "tick_rate", Value: float64(cfg.TickRate), Reason: "must not be negative"}
	}
	if cfg.ListRuns && cfg.SQLite == "" {
		return errors.New("-list_runs requires -sqlite")
	}
	return nil
}

// Run executes the command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	logger := log.New(errOut, "", 0)

	if cfg.ListRuns {
		return listRuns(ctx, cfg.SQLite, out)
	}

	s, err := cfg.Scenario()
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if s.Seed == 0 {
		seed, err := malariasim.NewSeed()
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		s.Seed = seed
	}
	logger.Printf("scenario %s version %s seed %d", s.ID, scenario.ComputeVersion(&s), s.Seed)

	if cfg.Replicates > 1 {
		return runEnsemble(ctx, cfg, s, out, logger)
	}
	return runSingle(ctx, cfg, s, out, logger)
}

func chartPath(cfg Config) string {
	if cfg.Chart == "" || filepath.IsAbs(cfg.Chart) || filepath.Dir(cfg.Chart) != "." {
		return cfg.Chart
	}
	return filepath.Join(cfg.OutDir, cfg.Chart)
}

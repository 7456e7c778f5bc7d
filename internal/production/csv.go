package production

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/comalice/malariasim/simulation"
)

// DefaultCSVName is the base name of the per-day infected table.
const DefaultCSVName = "simulation_results"

var csvHeader = []string{"Day", "Infected"}

// WriteCSV writes the two-column Day,Infected table, one row per day.
func WriteCSV(w io.Writer, h simulation.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range h {
		if err := cw.Write([]string{strconv.Itoa(rec.Day), strconv.Itoa(rec.Infected)}); err != nil {
			return fmt.Errorf("write day %d: %w", rec.Day, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV and returns the infected counts in day order.
func ReadCSV(r io.Reader) ([]int, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) != 2 || rows[0][0] != csvHeader[0] || rows[0][1] != csvHeader[1] {
		return nil, errors.New("missing Day,Infected header")
	}
	out := make([]int, 0, len(rows)-1)
	for i, row := range rows[1:] {
		day, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d day: %w", i+1, err)
		}
		if day != i+1 {
			return nil, fmt.Errorf("row %d: expected day %d, got %d", i+1, i+1, day)
		}
		n, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d infected: %w", i+1, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// CSVPersister writes the Day,Infected table of a run into a directory.
type CSVPersister struct {
	dir  string
	name string
}

// NewCSVPersister creates a CSVPersister, ensuring the directory exists. An
// empty name selects DefaultCSVName.
func NewCSVPersister(dir, name string) (*CSVPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if name == "" {
		name = DefaultCSVName
	}
	return &CSVPersister{dir: dir, name: name}, nil
}

// Path returns the file the persister writes.
func (p *CSVPersister) Path() string {
	return filepath.Join(p.dir, p.name+".csv")
}

func (p *CSVPersister) Save(ctx context.Context, result RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn := p.Path()
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("create %s: %w", fn, err)
	}
	if err := WriteCSV(f, result.History); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return f.Close()
}

// DefaultSummaryName is the base name of the ensemble summary table.
const DefaultSummaryName = "ensemble_summary"

// WriteSummaryCSV writes one row of ensemble statistics per day.
func WriteSummaryCSV(w io.Writer, summary []simulation.DaySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Day", "Mean", "StdDev", "Min", "Max"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range summary {
		row := []string{
			strconv.Itoa(s.Day),
			strconv.FormatFloat(s.Mean, 'f', 3, 64),
			strconv.FormatFloat(s.StdDev, 'f', 3, 64),
			strconv.Itoa(s.Min),
			strconv.Itoa(s.Max),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write day %d: %w", s.Day, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveSummary writes the ensemble summary next to the run table as <name>.csv.
func (p *CSVPersister) SaveSummary(name string, summary []simulation.DaySummary) (string, error) {
	if name == "" {
		name = DefaultSummaryName
	}
	fn := filepath.Join(p.dir, name+".csv")
	f, err := os.Create(fn)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fn, err)
	}
	if err := WriteSummaryCSV(f, summary); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", fn, err)
	}
	return fn, f.Close()
}

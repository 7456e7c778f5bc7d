package production

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/comalice/malariasim"
	"github.com/comalice/malariasim/simulation"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// ErrRunNotFound is returned by SQLiteStore.LoadRun for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one row of SQLiteStore.ListRuns.
type RunSummary struct {
	RunID      string
	ScenarioID string
	Version    string
	Seed       uint64
	Days       int
	Peak       int
	StartedAt  time.Time
	FinishedAt time.Time
}

// SQLiteStore keeps run results and their day tables in a SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLiteStore opens (or creates) the database at path and applies embedded migrations.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrationFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save implements Persister.
func (s *SQLiteStore) Save(ctx context.Context, result RunResult) error {
	return s.SaveRun(ctx, result)
}

// Load implements Persister.
func (s *SQLiteStore) Load(ctx context.Context, runID string) (RunResult, error) {
	return s.LoadRun(ctx, runID)
}

// SaveRun inserts a run and all of its day records in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, result RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	runID := strings.TrimSpace(result.RunID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	scenarioJSON, err := json.Marshal(result.Scenario)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Seeds are stored bit-for-bit as signed integers.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, scenario_id, version, seed, scenario_json, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		result.Scenario.ID,
		result.Version,
		int64(result.Seed),
		string(scenarioJSON),
		toMillis(result.StartedAt),
		toMillis(result.FinishedAt),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_days (run_id, day, protected, susceptible, infected, recovered, newly_protected, medicated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare day insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range result.History {
		c := rec.Census
		if _, err := stmt.ExecContext(ctx, runID, rec.Day,
			c.Protected, c.Susceptible, c.Infected, c.Recovered,
			rec.NewlyProtected, rec.Medicated,
		); err != nil {
			return fmt.Errorf("insert day %d: %w", rec.Day, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", runID, err)
	}
	return nil
}

// LoadRun reads a run and its day table. Unknown IDs return ErrRunNotFound.
func (s *SQLiteStore) LoadRun(ctx context.Context, runID string) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	if s == nil || s.sqlDB == nil {
		return RunResult{}, fmt.Errorf("storage is not configured")
	}

	var (
		result       RunResult
		seed         int64
		scenarioJSON string
		startedAt    int64
		finishedAt   int64
	)
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT run_id, version, seed, scenario_json, started_at, finished_at FROM runs WHERE run_id = ?`,
		runID)
	if err := row.Scan(&result.RunID, &result.Version, &seed, &scenarioJSON, &startedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunResult{}, fmt.Errorf("run %q: %w", runID, ErrRunNotFound)
		}
		return RunResult{}, fmt.Errorf("select run %s: %w", runID, err)
	}
	if err := json.Unmarshal([]byte(scenarioJSON), &result.Scenario); err != nil {
		return RunResult{}, fmt.Errorf("unmarshal scenario: %w", err)
	}
	result.Seed = uint64(seed)
	result.StartedAt = fromMillis(startedAt)
	result.FinishedAt = fromMillis(finishedAt)

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT day, protected, susceptible, infected, recovered, newly_protected, medicated
		 FROM run_days WHERE run_id = ? ORDER BY day`, runID)
	if err != nil {
		return RunResult{}, fmt.Errorf("select days %s: %w", runID, err)
	}
	defer rows.Close()

	history := simulation.History{}
	for rows.Next() {
		var (
			rec simulation.DayRecord
			c   malariasim.Census
		)
		if err := rows.Scan(&rec.Day, &c.Protected, &c.Susceptible, &c.Infected, &c.Recovered,
			&rec.NewlyProtected, &rec.Medicated); err != nil {
			return RunResult{}, fmt.Errorf("scan day: %w", err)
		}
		rec.Census = c
		rec.Infected = c.Infected
		history = append(history, rec)
	}
	if err := rows.Err(); err != nil {
		return RunResult{}, fmt.Errorf("iterate days: %w", err)
	}
	result.History = history
	return result, nil
}

// ListRuns returns every stored run, most recent first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT r.run_id, r.scenario_id, r.version, r.seed, r.started_at, r.finished_at,
       COUNT(d.day), COALESCE(MAX(d.infected), 0)
FROM runs r
LEFT JOIN run_days d ON d.run_id = r.run_id
GROUP BY r.run_id
ORDER BY r.started_at DESC, r.run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			sum        RunSummary
			seed       int64
			startedAt  int64
			finishedAt int64
		)
		if err := rows.Scan(&sum.RunID, &sum.ScenarioID, &sum.Version, &seed, &startedAt, &finishedAt,
			&sum.Days, &sum.Peak); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		sum.Seed = uint64(seed)
		sum.StartedAt = fromMillis(startedAt)
		sum.FinishedAt = fromMillis(finishedAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}

const migrationTable = "schema_migrations"

// applyMigrations executes embedded migrations under root at most once per file.
func applyMigrations(sqlDB *sql.DB, migrations fs.FS, root string) error {
	entries, err := fs.ReadDir(migrations, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var found int
		err := sqlDB.QueryRow("SELECT 1 FROM "+migrationTable+" WHERE name = ?", file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrations, root+"/"+file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		upSQL := extractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := sqlDB.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec("INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
			file, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// extractUpMigration returns the SQL in the -- +migrate Up section.
func extractUpMigration(content string) string {
	upIdx := strings.Index(content, "-- +migrate Up")
	if upIdx == -1 {
		return content
	}
	body := content[upIdx+len("-- +migrate Up"):]
	if downIdx := strings.Index(body, "-- +migrate Down"); downIdx != -1 {
		body = body[:downIdx]
	}
	return body
}

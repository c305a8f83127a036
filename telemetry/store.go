package telemetry

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Run describes one simulation run in the store.
type Run struct {
	ID              string    `db:"id"`
	StartedAt       time.Time `db:"started_at"`
	Seed            uint64    `db:"seed"`
	Width           int       `db:"width"`
	Height          int       `db:"height"`
	Agents          int       `db:"agents"`
	MemoryCapacity  int       `db:"memory_capacity"`
	DepositAmount   float64   `db:"deposit_amount"`
	RetentionFactor float64   `db:"retention_factor"`
	SpreadEnabled   bool      `db:"spread_enabled"`
	FinalTick       int       `db:"final_tick"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Store is a SQLite sink for run metadata and windowed field stats.
// It only ever appends; nothing is read back into a simulation.
type Store struct {
	conn *sqlx.DB
}

// statsRow is a FieldStats row tagged with its run.
type statsRow struct {
	RunID string `db:"run_id"`
	FieldStats
}

// OpenStore opens or creates a SQLite database at the given path.
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		agents INTEGER NOT NULL,
		memory_capacity INTEGER NOT NULL,
		deposit_amount REAL NOT NULL,
		retention_factor REAL NOT NULL,
		spread_enabled INTEGER NOT NULL,
		final_tick INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS field_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		window_start INTEGER NOT NULL,
		window_end INTEGER NOT NULL,
		agents INTEGER NOT NULL,
		mass REAL NOT NULL,
		max REAL NOT NULL,
		mean REAL NOT NULL,
		stddev REAL NOT NULL,
		coverage REAL NOT NULL,
		trail_p50 REAL NOT NULL,
		trail_p90 REAL NOT NULL,
		mass_min REAL NOT NULL,
		mass_max REAL NOT NULL,
		occupied_cells INTEGER NOT NULL,
		mean_memory REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_field_stats_run ON field_stats(run_id, window_end);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// BeginRun records a new run.
func (s *Store) BeginRun(run Run) error {
	if s == nil {
		return nil
	}
	// SQLite integers are signed
	run.Seed &= 1<<63 - 1
	_, err := s.conn.NamedExec(`
		INSERT INTO runs (id, started_at, seed, width, height, agents, memory_capacity,
			deposit_amount, retention_factor, spread_enabled, final_tick)
		VALUES (:id, :started_at, :seed, :width, :height, :agents, :memory_capacity,
			:deposit_amount, :retention_factor, :spread_enabled, :final_tick)`, run)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	slog.Debug("run recorded", "run_id", run.ID)
	return nil
}

// WriteStats appends one window of field stats for a run.
func (s *Store) WriteStats(runID string, stats FieldStats) error {
	if s == nil {
		return nil
	}
	_, err := s.conn.NamedExec(`
		INSERT INTO field_stats (run_id, window_start, window_end, agents, mass, max, mean,
			stddev, coverage, trail_p50, trail_p90, mass_min, mass_max, occupied_cells, mean_memory)
		VALUES (:run_id, :window_start, :window_end, :agents, :mass, :max, :mean,
			:stddev, :coverage, :trail_p50, :trail_p90, :mass_min, :mass_max, :occupied_cells, :mean_memory)`,
		statsRow{RunID: runID, FieldStats: stats})
	if err != nil {
		return fmt.Errorf("insert field stats: %w", err)
	}
	return nil
}

// FinishRun stores the final tick of a run.
func (s *Store) FinishRun(runID string, finalTick int) error {
	if s == nil {
		return nil
	}
	if _, err := s.conn.Exec("UPDATE runs SET final_tick = ? WHERE id = ?", finalTick, runID); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun loads a run by id.
func (s *Store) GetRun(runID string) (Run, error) {
	var run Run
	err := s.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", runID)
	return run, err
}

// RunStats returns a run's stats windows in tick order.
func (s *Store) RunStats(runID string) ([]FieldStats, error) {
	var stats []FieldStats
	err := s.conn.Select(&stats, `
		SELECT window_start, window_end, agents, mass, max, mean, stddev, coverage,
			trail_p50, trail_p90, mass_min, mass_max, occupied_cells, mean_memory
		FROM field_stats WHERE run_id = ? ORDER BY window_end`, runID)
	return stats, err
}

package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a point-in-time export of a run for offline inspection and
// rendering. It is not used to resume a run.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id,omitempty"`
	Seed    uint64 `json:"seed"`
	Tick    int    `json:"tick"`

	DepositAmount   float64 `json:"deposit_amount"`
	RetentionFactor float64 `json:"retention_factor"`
	SpreadEnabled   bool    `json:"spread_enabled"`

	Field  systems.FieldSnapshot   `json:"field"`
	Agents []components.AgentState `json:"agents"`
}

// Validate checks that the field payload matches its declared size.
func (s *Snapshot) Validate() error {
	if s.Field.Width <= 0 || s.Field.Height <= 0 {
		return fmt.Errorf("invalid field size %dx%d", s.Field.Width, s.Field.Height)
	}
	if want := s.Field.Width * s.Field.Height; len(s.Field.Cells) != want {
		return fmt.Errorf("field has %d cells, expected %d", len(s.Field.Cells), want)
	}
	return nil
}

// SaveSnapshot writes a snapshot to dir as snapshot_<tick>.json.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads and validates a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}

	return &snapshot, nil
}

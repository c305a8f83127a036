package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldStats holds aggregated statistics for one telemetry window.
type FieldStats struct {
	WindowStartTick int `csv:"-" db:"window_start"`
	WindowEndTick   int `csv:"window_end" db:"window_end"`

	Agents int `csv:"agents" db:"agents"`

	// Field intensity at window end
	Mass     float64 `csv:"mass" db:"mass"`
	Max      float64 `csv:"max" db:"max"`
	Mean     float64 `csv:"mean" db:"mean"`
	StdDev   float64 `csv:"stddev" db:"stddev"`
	Coverage float64 `csv:"coverage" db:"coverage"` // fraction of cells > 0
	TrailP50 float64 `csv:"trail_p50" db:"trail_p50"`
	TrailP90 float64 `csv:"trail_p90" db:"trail_p90"`

	// Mass range seen over the window
	MassMin float64 `csv:"mass_min" db:"mass_min"`
	MassMax float64 `csv:"mass_max" db:"mass_max"`

	// Agent distribution
	OccupiedCells int     `csv:"occupied_cells" db:"occupied_cells"`
	MeanMemory    float64 `csv:"mean_memory" db:"mean_memory"`
}

// FieldSample is the raw state handed to ComputeFieldStats.
type FieldSample struct {
	Cells         []float64
	Agents        int
	OccupiedCells int
	MeanMemory    float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats reduces a field sample to its window-end statistics.
// Trail percentiles are taken over non-zero cells only so that an empty
// background does not flatten them.
func ComputeFieldStats(s FieldSample) FieldStats {
	out := FieldStats{
		Agents:        s.Agents,
		OccupiedCells: s.OccupiedCells,
		MeanMemory:    s.MeanMemory,
	}
	n := len(s.Cells)
	if n == 0 {
		return out
	}

	out.Mass = floats.Sum(s.Cells)
	out.Max = floats.Max(s.Cells)
	out.Mean, out.StdDev = stat.PopMeanStdDev(s.Cells, nil)

	trail := make([]float64, 0, n)
	for _, v := range s.Cells {
		if v > 0 {
			trail = append(trail, v)
		}
	}
	out.Coverage = float64(len(trail)) / float64(n)

	sort.Float64s(trail)
	out.TrailP50 = Percentile(trail, 0.50)
	out.TrailP90 = Percentile(trail, 0.90)

	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("agents", s.Agents),
		slog.Float64("mass", s.Mass),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
		slog.Float64("coverage", s.Coverage),
		slog.Float64("trail_p50", s.TrailP50),
		slog.Float64("trail_p90", s.TrailP90),
		slog.Float64("mass_min", s.MassMin),
		slog.Float64("mass_max", s.MassMax),
		slog.Int("occupied_cells", s.OccupiedCells),
		slog.Float64("mean_memory", s.MeanMemory),
	)
}

// LogStats logs the window stats using slog.
func (s FieldStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"agents", s.Agents,
		"mass", s.Mass,
		"max", s.Max,
		"coverage", s.Coverage,
		"trail_p50", s.TrailP50,
		"trail_p90", s.TrailP90,
		"occupied_cells", s.OccupiedCells,
	)
}

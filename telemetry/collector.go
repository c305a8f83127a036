package telemetry

import "math"

// Collector groups ticks into fixed windows and produces FieldStats.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStartTick int
	massMin         float64
	massMax         float64
	samples         int
}

// NewCollector creates a new stats collector with windows of windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	c := &Collector{windowTicks: windowTicks}
	c.reset(0)
	return c
}

// RecordMass tracks the field mass after a tick.
func (c *Collector) RecordMass(mass float64) {
	c.massMin = math.Min(c.massMin, mass)
	c.massMax = math.Max(c.massMax, mass)
	c.samples++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Pending reports whether ticks since the last flush have not been reported.
func (c *Collector) Pending(currentTick int) bool {
	return currentTick > c.windowStartTick
}

// Flush produces the stats for the window ending at currentTick and resets
// for the next window.
func (c *Collector) Flush(currentTick int, sample FieldSample) FieldStats {
	stats := ComputeFieldStats(sample)
	stats.WindowStartTick = c.windowStartTick
	stats.WindowEndTick = currentTick

	if c.samples > 0 {
		stats.MassMin = c.massMin
		stats.MassMax = c.massMax
	} else {
		stats.MassMin = stats.Mass
		stats.MassMax = stats.Mass
	}

	c.reset(currentTick)
	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

func (c *Collector) reset(tick int) {
	c.windowStartTick = tick
	c.massMin = math.Inf(1)
	c.massMax = math.Inf(-1)
	c.samples = 0
}

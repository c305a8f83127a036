package inspector

import "github.com/pthm-cable/trails/components"

// FieldReader is the part of a pheromone field the inspector reads.
type FieldReader interface {
	Sample(x, y int) float64
	Max() float64
}

// CellInfo is what the inspector shows for one grid cell. Bars are scaled
// to [0, 1]: trail values against the field maximum, headings as a share
// of the agents standing on the cell.
type CellInfo struct {
	X     int     `inspect:"label"`
	Y     int     `inspect:"label"`
	Value float64 `inspect:"label,fmt:%.3f"`

	Relative   float64                         `inspect:"bar"`
	Neighbours [components.NumHeadings]float64 `inspect:"bar,labels:N|NE|E|SE|S|SW|W|NW"`

	Agents     int                             `inspect:"label"`
	Headings   [components.NumHeadings]float64 `inspect:"bar,labels:N|NE|E|SE|S|SW|W|NW"`
	MeanMemory float64                         `inspect:"label,fmt:%.1f"`
	Occupied   bool                            `inspect:"bool"`
}

// InspectCell gathers the trail around (x, y) and the agents standing on it.
func InspectCell(field FieldReader, agents []components.AgentState, x, y int) CellInfo {
	info := CellInfo{X: x, Y: y, Value: field.Sample(x, y)}

	max := field.Max()
	if max > 0 {
		info.Relative = info.Value / max
	}
	for h := components.Heading(0); h < components.NumHeadings; h++ {
		dx, dy := h.Delta()
		if max > 0 {
			info.Neighbours[h] = field.Sample(x+dx, y+dy) / max
		}
	}

	memory := 0
	for _, a := range agents {
		if a.X != x || a.Y != y {
			continue
		}
		info.Agents++
		memory += a.Memory
		if a.Heading.Valid() {
			info.Headings[a.Heading]++
		}
	}
	if info.Agents > 0 {
		info.Occupied = true
		info.MeanMemory = float64(memory) / float64(info.Agents)
		for i := range info.Headings {
			info.Headings[i] /= float64(info.Agents)
		}
	}
	return info
}

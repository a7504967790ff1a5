// Package layout computes default grid placement for notes that have never
// been explicitly positioned, and the geometry of drag gestures. Everything
// here is pure arithmetic over pixel-space values.
package layout

import (
	"wallboard-backend/internal/models"
)

// MobileMaxWidth is the viewport cutoff between the narrow (5-column) and
// wide (3-column) grids.
const MobileMaxWidth = 768

type Viewport struct {
	Width float64
}

func (v Viewport) Mobile() bool {
	return v.Width <= MobileMaxWidth
}

type gridParams struct {
	cellWidth  float64
	cellHeight float64
	gap        float64
	columns    int
	padLeft    float64
}

func paramsFor(v Viewport) gridParams {
	if v.Mobile() {
		return gridParams{cellWidth: 40, cellHeight: 40, gap: 15, columns: 5, padLeft: 10}
	}
	return gridParams{cellWidth: 120, cellHeight: 120, gap: 20, columns: 3, padLeft: 20}
}

// Columns returns the grid column count for the viewport.
func Columns(v Viewport) int {
	return paramsFor(v).columns
}

// BaseTop is where the first grid row starts. The public view reserves space
// for the pinned announcement banner; private folders start near the top.
func BaseTop(v Viewport, public bool) float64 {
	if !public {
		return 20
	}
	if v.Mobile() {
		return 80
	}
	return 120
}

// GridPosition is the default placement for the note at the given rank inside
// its folder. Rotation is always 0.
func GridPosition(v Viewport, rank int, public bool) models.Position {
	p := paramsFor(v)
	row := rank / p.columns
	col := rank % p.columns
	return models.Position{
		X:        float64(col)*(p.cellWidth+p.gap) + p.padLeft,
		Y:        float64(row)*(p.cellHeight+p.gap) + BaseTop(v, public),
		Rotation: 0,
	}
}

// Place resolves each message's position: an explicit position is passed
// through untouched, everything else gets the grid default for its rank.
// Messages are expected in render order (id descending).
func Place(v Viewport, messages []models.Message, public bool) []models.Position {
	out := make([]models.Position, len(messages))
	for i, m := range messages {
		if m.Position != nil {
			out[i] = *m.Position
			continue
		}
		out[i] = GridPosition(v, i, public)
	}
	return out
}

package layout

import "math"

const (
	// DragLimit is the side of the square a note may roam in around its
	// pre-drag position.
	DragLimit = 100
	// CanvasMargin keeps a dragged note off the canvas edges.
	CanvasMargin = 20
	// CanvasInset keeps the note's body inside the right and bottom bounds.
	CanvasInset = 150
)

type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width &&
		y >= r.Top && y <= r.Top+r.Height
}

// ClampDrag bounds an in-flight drag: first to the DragLimit square around
// the pre-drag origin, then again to the visible canvas.
func ClampDrag(originX, originY, x, y float64, canvas Rect) (float64, float64) {
	x = math.Max(originX-DragLimit/2, math.Min(originX+DragLimit/2, x))
	y = math.Max(originY-DragLimit/2, math.Min(originY+DragLimit/2, y))

	x = math.Max(CanvasMargin, math.Min(canvas.Width-CanvasInset, x))
	y = math.Max(CanvasMargin, math.Min(canvas.Height-CanvasInset, y))
	return x, y
}

// Tab is a rendered folder tab's hit area. A nil FolderID is the public tab.
type Tab struct {
	FolderID *int64
	Bounds   Rect
}

// HitTab tests a pointer position against the rendered folder tabs. The
// second return is false when the pointer is over no tab at all.
func HitTab(tabs []Tab, x, y float64) (*int64, bool) {
	for _, tab := range tabs {
		if tab.Bounds.Contains(x, y) {
			return tab.FolderID, true
		}
	}
	return nil, false
}

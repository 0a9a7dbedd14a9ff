package atlas

import "image"

// Layout describes a fixed grid of equally sized cells on a single canvas.
// Cell i sits at column i mod Cols, row i / Cols.
type Layout struct {
	CellW   int
	CellH   int
	Cols    int
	Rows    int
	Count   int
	Padding int
}

func NewLayout(count, cols, cellW, cellH, padding int) Layout {
	rows := (count + cols - 1) / cols
	return Layout{
		CellW:   cellW,
		CellH:   cellH,
		Cols:    cols,
		Rows:    rows,
		Count:   count,
		Padding: padding,
	}
}

// Pos returns the top-left pixel of cell i.
func (l Layout) Pos(i int) (x, y int) {
	col := i % l.Cols
	row := i / l.Cols
	return col * (l.CellW + l.Padding), row * (l.CellH + l.Padding)
}

// CellRect returns the canvas rectangle covered by cell i.
func (l Layout) CellRect(i int) image.Rectangle {
	x, y := l.Pos(i)
	return image.Rect(x, y, x+l.CellW, y+l.CellH)
}

// Bounds returns the canvas rectangle for the full grid.
func (l Layout) Bounds() image.Rectangle {
	w := l.Cols*l.CellW + (l.Cols-1)*l.Padding
	h := l.Rows*l.CellH + (l.Rows-1)*l.Padding
	return image.Rect(0, 0, w, h)
}

// CanvasBytes estimates the RGBA canvas allocation.
func (l Layout) CanvasBytes() uint64 {
	b := l.Bounds()
	return uint64(b.Dx()) * uint64(b.Dy()) * 4
}

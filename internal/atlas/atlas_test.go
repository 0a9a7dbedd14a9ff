package atlas

import (
	"bytes"
	"fmt"
	"image"
	"testing"
)

func TestLayoutGeometry(t *testing.T) {
	tests := []struct {
		name         string
		count, cols  int
		cellW, cellH int
		wantRows     int
		wantW, wantH int
	}{
		{"80 frames 8 cols 1080p", 80, 8, 1920, 1080, 10, 15360, 10800},
		{"48 frames 8 cols", 48, 8, 100, 50, 6, 800, 300},
		{"24 frames 6 cols scaled", 24, 6, 1536, 870, 4, 9216, 3480},
		{"partial last row", 10, 4, 10, 10, 3, 40, 30},
		{"single frame", 1, 8, 64, 64, 1, 512, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.count, tt.cols, tt.cellW, tt.cellH, 0)
			if l.Rows != tt.wantRows {
				t.Errorf("Expected %d rows, got %d", tt.wantRows, l.Rows)
			}
			b := l.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Expected canvas %dx%d, got %dx%d", tt.wantW, tt.wantH, b.Dx(), b.Dy())
			}
		})
	}
}

func TestLayoutCellsDisjoint(t *testing.T) {
	for _, padding := range []int{0, 2} {
		t.Run(fmt.Sprintf("padding %d", padding), func(t *testing.T) {
			l := NewLayout(23, 5, 17, 11, padding)
			canvas := l.Bounds()
			for i := 0; i < l.Count; i++ {
				ri := l.CellRect(i)
				if !ri.In(canvas) {
					t.Errorf("Cell %d %v not contained in canvas %v", i, ri, canvas)
				}
				for j := i + 1; j < l.Count; j++ {
					if ri.Overlaps(l.CellRect(j)) {
						t.Errorf("Cells %d and %d overlap: %v vs %v", i, j, ri, l.CellRect(j))
					}
				}
			}
		})
	}
}

func TestLayoutPos(t *testing.T) {
	l := NewLayout(48, 8, 100, 60, 0)
	// Position contract of the animator: (i mod C * Wc, i / C * Hc).
	for i := 0; i < l.Count; i++ {
		x, y := l.Pos(i)
		if x != (i%8)*100 || y != (i/8)*60 {
			t.Errorf("Cell %d at (%d, %d), expected (%d, %d)", i, x, y, (i%8)*100, (i/8)*60)
		}
	}
}

// gridSource serves small frames with a per-index fill color.
type gridSource struct {
	w, h int
	fail map[int]bool
}

func (g *gridSource) LoadFrame(i int) (*image.NRGBA, error) {
	if g.fail[i] {
		return nil, fmt.Errorf("frame %d unavailable", i)
	}
	img := image.NewNRGBA(image.Rect(0, 0, g.w, g.h))
	for p := 0; p < len(img.Pix); p += 4 {
		img.Pix[p] = uint8(i * 7)
		img.Pix[p+1] = uint8(i * 13)
		img.Pix[p+2] = uint8(i * 29)
		img.Pix[p+3] = 255
	}
	return img, nil
}

func TestPackRoundTrip(t *testing.T) {
	src := &gridSource{w: 16, h: 12}
	sel := []int{0, 3, 5, 8, 13, 21, 34, 55, 89, 90}
	l := NewLayout(len(sel), 4, 16, 12, 0)

	canvas, err := Pack(src, sel, l)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !canvas.Bounds().Eq(l.Bounds()) {
		t.Fatalf("Canvas bounds %v, expected %v", canvas.Bounds(), l.Bounds())
	}

	// Every cell region must read back identical to its source frame.
	for i, idx := range sel {
		want, _ := src.LoadFrame(idx)
		rect := l.CellRect(i)
		for y := 0; y < 12; y++ {
			got := canvas.Pix[canvas.PixOffset(rect.Min.X, rect.Min.Y+y) : canvas.PixOffset(rect.Min.X, rect.Min.Y+y)+16*4]
			exp := want.Pix[want.PixOffset(0, y) : want.PixOffset(0, y)+16*4]
			if !bytes.Equal(got, exp) {
				t.Fatalf("Cell %d row %d differs from source frame %d", i, y, idx)
			}
		}
	}
}

func TestPackEmptyTrailingCells(t *testing.T) {
	src := &gridSource{w: 8, h: 8}
	sel := []int{0, 1, 2, 3, 4} // 5 frames in a 3-wide grid: last row has one empty cell
	l := NewLayout(len(sel), 3, 8, 8, 0)

	canvas, err := Pack(src, sel, l)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	empty := l.CellRect(5)
	for y := empty.Min.Y; y < empty.Max.Y; y++ {
		for x := empty.Min.X; x < empty.Max.X; x++ {
			o := canvas.PixOffset(x, y)
			if canvas.Pix[o] != 0 || canvas.Pix[o+1] != 0 || canvas.Pix[o+2] != 0 || canvas.Pix[o+3] != 0 {
				t.Fatalf("Unused cell not transparent at (%d, %d)", x, y)
			}
		}
	}
}

func TestPackDeterministic(t *testing.T) {
	src := &gridSource{w: 10, h: 10}
	sel := []int{2, 4, 6, 8, 10, 12}
	l := NewLayout(len(sel), 3, 10, 10, 0)

	first, err := Pack(src, sel, l)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	second, err := Pack(src, sel, l)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Two packs of identical input differ")
	}
}

func TestPackSkipsFailedFrames(t *testing.T) {
	src := &gridSource{w: 8, h: 8, fail: map[int]bool{1: true}}
	sel := []int{0, 1, 2}
	l := NewLayout(len(sel), 3, 8, 8, 0)

	canvas, err := Pack(src, sel, l)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	// The failed frame's cell stays transparent, neighbors are intact.
	bad := l.CellRect(1)
	o := canvas.PixOffset(bad.Min.X, bad.Min.Y)
	if canvas.Pix[o+3] != 0 {
		t.Error("Failed frame's cell is not transparent")
	}
	good := l.CellRect(2)
	o = canvas.PixOffset(good.Min.X, good.Min.Y)
	if canvas.Pix[o+3] != 255 {
		t.Error("Neighbor cell missing after a skipped frame")
	}
}

func TestPackSelectionMismatch(t *testing.T) {
	src := &gridSource{w: 8, h: 8}
	l := NewLayout(4, 2, 8, 8, 0)
	if _, err := Pack(src, []int{0, 1}, l); err == nil {
		t.Error("Expected error for selection/layout mismatch, got nil")
	}
}

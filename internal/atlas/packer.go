package atlas

import (
	"fmt"
	"image"
	"log"

	"github.com/xiaobai/spritepack/internal/transform"
)

// FrameSource yields decoded frames by index. Frames are loaded one at a
// time; the packer drops each frame as soon as it has been pasted so the
// canvas stays the only large allocation.
type FrameSource interface {
	LoadFrame(index int) (*image.NRGBA, error)
}

// Pack assembles the selected frames onto a transparent canvas in grid
// order. Each frame is resized to the cell size and composited with its own
// alpha, so empty cells and transparent frame regions stay fully transparent.
// A frame that fails to load leaves its cell empty; the run continues.
func Pack(src FrameSource, selection []int, layout Layout) (*image.NRGBA, error) {
	if len(selection) != layout.Count {
		return nil, fmt.Errorf("layout expects %d frames, selection has %d", layout.Count, len(selection))
	}

	canvas := image.NewNRGBA(layout.Bounds())

	for i, idx := range selection {
		frame, err := src.LoadFrame(idx)
		if err != nil {
			log.Printf("[!] Frame %d could not be loaded, cell %d left empty: %v", idx, i, err)
			continue
		}

		cell := transform.Resize(frame, layout.CellW, layout.CellH)
		pasteCell(canvas, layout.CellRect(i), cell)

		if (i+1)%10 == 0 || i == len(selection)-1 {
			fmt.Printf("  [>] %d/%d\n", i+1, len(selection))
		}
	}

	return canvas, nil
}

// pasteCell copies src into dst at rect, skipping fully transparent source
// pixels. Opaque and semi-transparent pixels are copied byte for byte, so a
// packed cell reads back identical to the frame that produced it; going
// through premultiplied compositing instead would not.
func pasteCell(dst *image.NRGBA, rect image.Rectangle, src *image.NRGBA) {
	w, h := rect.Dx(), rect.Dy()
	for y := 0; y < h; y++ {
		so := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		do := dst.PixOffset(rect.Min.X, rect.Min.Y+y)
		for x := 0; x < w; x++ {
			if src.Pix[so+3] != 0 {
				copy(dst.Pix[do:do+4], src.Pix[so:so+4])
			}
			so += 4
			do += 4
		}
	}
}

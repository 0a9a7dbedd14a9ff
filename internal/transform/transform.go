package transform

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// Resize scales a frame to exactly w x h with Lanczos3 resampling. All four
// channels are resampled; alpha is never dropped and re-derived. Equal
// dimensions are a no-op.
func Resize(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	return ToNRGBA(resize.Resize(uint(w), uint(h), img, resize.Lanczos3))
}

// ScaledSize resolves a cell size from a native size and a scale factor.
func ScaledSize(w, h int, scale float64) (int, int) {
	return int(float64(w) * scale), int(float64(h) * scale)
}

// Letterbox centers a frame on a transparent w x h canvas. Used when a run
// contains frames of differing sizes.
func Letterbox(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	offX := (w - b.Dx()) / 2
	offY := (h - b.Dy()) / 2
	dst := image.Rect(offX, offY, offX+b.Dx(), offY+b.Dy())
	draw.Draw(canvas, dst, img, b.Min, draw.Src)
	return canvas
}

// ToNRGBA returns img as a straight-alpha *image.NRGBA with a zero origin,
// copying only when the representation does not already match. Frames stay
// non-premultiplied end to end; converting through image.RGBA would bake the
// alpha into the color channels.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Stride == b.Dx()*4 && b.Min.X == 0 && b.Min.Y == 0 {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

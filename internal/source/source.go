package source

import (
	"errors"
	"image"
)

// ErrNoFrames means the input held nothing the loader could use.
var ErrNoFrames = errors.New("no usable frames in input")

// Source is an index-addressable, lazily decoded frame sequence. FrameSize
// reports the common frame dimensions; when the underlying files differ in
// size it is the elementwise maximum, and LoadFrame letterboxes every frame
// onto that canvas.
type Source interface {
	FrameCount() int
	FrameSize() (width, height int)
	LoadFrame(index int) (*image.NRGBA, error)
	Close() error
}

// DefaultExtensions is the raster whitelist applied when the caller does not
// supply one.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

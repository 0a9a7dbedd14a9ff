package source

import (
	"fmt"
	"image"
	"os"

	"github.com/xiaobai/spritepack/internal/atlas"
	"github.com/xiaobai/spritepack/internal/transform"
)

// AtlasSource treats an already packed sprite sheet as a frame sequence, so
// an existing atlas can be thinned or rescaled without the original renders.
// The sheet is decoded once; frames are cropped out of it by the same grid
// layout that packed them.
type AtlasSource struct {
	sheet  *image.NRGBA
	layout atlas.Layout
}

// NewAtlasSource opens a sprite sheet and validates that its pixel
// dimensions match the given layout exactly. A mismatch means the sidecar or
// the explicit geometry flags describe a different file.
func NewAtlasSource(path string, layout atlas.Layout) (*AtlasSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening atlas: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding atlas %s: %w", path, err)
	}

	want := layout.Bounds()
	got := img.Bounds()
	if got.Dx() != want.Dx() || got.Dy() != want.Dy() {
		return nil, fmt.Errorf("atlas is %dx%d but the declared grid needs %dx%d",
			got.Dx(), got.Dy(), want.Dx(), want.Dy())
	}
	if layout.Count == 0 {
		return nil, fmt.Errorf("%w: declared grid holds zero frames", ErrNoFrames)
	}

	return &AtlasSource{sheet: transform.ToNRGBA(img), layout: layout}, nil
}

func (s *AtlasSource) FrameCount() int {
	return s.layout.Count
}

func (s *AtlasSource) FrameSize() (int, int) {
	return s.layout.CellW, s.layout.CellH
}

func (s *AtlasSource) LoadFrame(index int) (*image.NRGBA, error) {
	if index < 0 || index >= s.layout.Count {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", index, s.layout.Count)
	}
	cell := s.sheet.SubImage(s.layout.CellRect(index)).(*image.NRGBA)
	return transform.ToNRGBA(cell), nil
}

func (s *AtlasSource) Close() error {
	s.sheet = nil
	return nil
}

package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/xiaobai/spritepack/internal/transform"
)

// ImageSource reads a directory of per-frame rasters. Files are filtered by
// extension, ordered lexicographically by name, and decoded one at a time on
// LoadFrame.
type ImageSource struct {
	paths []string
	sizes []image.Point
	maxW  int
	maxH  int
	pad   bool
}

// NewImageSource scans dir and probes every matching file's header. Files
// that cannot be decoded, or that exceed maxPixels (0 disables the cap), are
// skipped with a diagnostic. An empty result is ErrNoFrames.
func NewImageSource(dir string, exts []string, maxPixels int64) (*ImageSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range exts {
			if ext == want {
				names = append(names, entry.Name())
				break
			}
		}
	}
	sort.Strings(names)

	s := &ImageSource{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		cfg, err := probeSize(path)
		if err != nil {
			log.Printf("[!] Skipping %s: %v", name, err)
			continue
		}
		if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
			log.Printf("[!] Skipping %s: %dx%d exceeds pixel cap %d", name, cfg.Width, cfg.Height, maxPixels)
			continue
		}
		s.paths = append(s.paths, path)
		s.sizes = append(s.sizes, image.Pt(cfg.Width, cfg.Height))
		if cfg.Width > s.maxW {
			s.maxW = cfg.Width
		}
		if cfg.Height > s.maxH {
			s.maxH = cfg.Height
		}
	}

	if len(s.paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFrames, dir)
	}

	for _, sz := range s.sizes {
		if sz.X != s.maxW || sz.Y != s.maxH {
			s.pad = true
			break
		}
	}
	if s.pad {
		log.Printf("[!] Frame sizes differ, centering every frame on a %dx%d canvas", s.maxW, s.maxH)
	}

	return s, nil
}

func probeSize(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}

func (s *ImageSource) FrameCount() int {
	return len(s.paths)
}

func (s *ImageSource) FrameSize() (int, int) {
	return s.maxW, s.maxH
}

// FramePath returns the file backing frame index.
func (s *ImageSource) FramePath(index int) string {
	return s.paths[index]
}

func (s *ImageSource) LoadFrame(index int) (*image.NRGBA, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(s.paths[index]), err)
	}

	frame := transform.ToNRGBA(img)
	if s.pad && (frame.Bounds().Dx() != s.maxW || frame.Bounds().Dy() != s.maxH) {
		frame = transform.Letterbox(frame, s.maxW, s.maxH)
	}
	return frame, nil
}

func (s *ImageSource) Close() error {
	return nil
}

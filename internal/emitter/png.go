package emitter

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG encodes the atlas losslessly at maximum deflate level. One
// attempt; a partial file on failure is the caller's signal that the output
// is invalid.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

package emitter

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is the sidecar record the downstream animator consumes. Cell i of
// the atlas sits at (i mod cols * cell_w, i / cols * cell_h), plus padding
// when set.
type Metadata struct {
	CellW         int    `yaml:"cell_w"`
	CellH         int    `yaml:"cell_h"`
	FrameCount    int    `yaml:"frame_count"`
	Cols          int    `yaml:"cols"`
	Rows          int    `yaml:"rows"`
	Padding       int    `yaml:"padding"`
	FPSHint       int    `yaml:"fps_hint"`
	Policy        string `yaml:"policy"`
	SourceStart   int    `yaml:"source_start"`
	SourceEnd     int    `yaml:"source_end"`
	SourceIndices []int  `yaml:"source_indices"`
}

// SidecarPath derives the metadata path for an atlas file.
func SidecarPath(atlasPath string) string {
	ext := filepath.Ext(atlasPath)
	return strings.TrimSuffix(atlasPath, ext) + ".yaml"
}

// WriteMetadata writes the sidecar record as YAML.
func WriteMetadata(meta *Metadata, path string) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadMetadata reads a sidecar record back, as the repack path does.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

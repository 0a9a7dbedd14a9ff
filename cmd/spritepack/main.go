package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/xiaobai/spritepack/internal/atlas"
	"github.com/xiaobai/spritepack/internal/config"
	"github.com/xiaobai/spritepack/internal/emitter"
	"github.com/xiaobai/spritepack/internal/engine"
	"github.com/xiaobai/spritepack/internal/source"
	"github.com/xiaobai/spritepack/internal/system"
)

func main() {
	inputPtr := flag.String("input", "", "Frame directory, or an existing atlas PNG with -repack")
	outputPtr := flag.String("output", "sprite-sheet.png", "Output atlas path")
	framesPtr := flag.Int("frames", 48, "Target frame count K")
	colsPtr := flag.Int("cols", 8, "Atlas columns")
	cellWPtr := flag.Int("cell-width", 0, "Cell width (0 = native)")
	cellHPtr := flag.Int("cell-height", 0, "Cell height (0 = native)")
	scalePtr := flag.Float64("scale", 0, "Cell size as a fraction of native size (e.g. 0.8); excludes -cell-width/-cell-height")
	padPtr := flag.Int("padding", 0, "Gap between cells in pixels")
	policyPtr := flag.String("policy", config.PolicyUniform, "Selection policy: uniform, head_cap, motion_window, explicit_range")
	headPtr := flag.Int("head", 0, "head_cap: only consider the first N frames")
	startPtr := flag.Int("start", 0, "explicit_range: first frame index")
	endPtr := flag.Int("end", 0, "explicit_range: last frame index (inclusive)")
	fpsPtr := flag.Int("fps", 24, "FPS hint recorded in the metadata")
	analyzePtr := flag.Bool("analyze", false, "Print the difference signal and stall intervals, then exit")
	repackPtr := flag.Bool("repack", false, "Input is an existing atlas; crop its cells as the frame source")
	repackMetaPtr := flag.String("repack-meta", "", "Metadata sidecar of the input atlas (default: <input>.yaml)")
	repackColsPtr := flag.Int("repack-cols", 0, "Input atlas columns (when no sidecar exists)")
	repackCellWPtr := flag.Int("repack-cell-width", 0, "Input atlas cell width")
	repackCellHPtr := flag.Int("repack-cell-height", 0, "Input atlas cell height")
	repackCountPtr := flag.Int("repack-count", 0, "Input atlas frame count")

	flag.Parse()

	envCfg, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("[-] Bad environment: %v", err)
	}
	if !envCfg.NoRlimit {
		system.InitResourceLimits()
	}

	cfg := &config.Config{
		InputPath:   *inputPtr,
		OutputPath:  *outputPtr,
		FrameCount:  *framesPtr,
		Cols:        *colsPtr,
		CellWidth:   *cellWPtr,
		CellHeight:  *cellHPtr,
		Scale:       *scalePtr,
		Padding:     *padPtr,
		Policy:      *policyPtr,
		HeadCap:     *headPtr,
		RangeStart:  *startPtr,
		RangeEnd:    *endPtr,
		FPSHint:     *fpsPtr,
		AnalyzeOnly: *analyzePtr,
		Repack:      *repackPtr,
		RepackMeta:  *repackMetaPtr,
		RepackCols:  *repackColsPtr,
		RepackCellW: *repackCellWPtr,
		RepackCellH: *repackCellHPtr,
		RepackCount: *repackCountPtr,
		MaxPixels:   envCfg.MaxPixels,
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Invalid parameters: %v", err)
	}

	src, err := openSource(cfg)
	if err != nil {
		log.Fatalf("[-] Could not open input: %v", err)
	}
	defer src.Close()

	project := engine.NewProject(cfg, src)
	if err := project.Run(); err != nil {
		log.Fatalf("[-] %v", err)
	}
}

func openSource(cfg *config.Config) (source.Source, error) {
	if !cfg.Repack {
		return source.NewImageSource(cfg.InputPath, source.DefaultExtensions, cfg.MaxPixels)
	}

	layout, err := repackLayout(cfg)
	if err != nil {
		return nil, err
	}
	return source.NewAtlasSource(cfg.InputPath, layout)
}

// repackLayout recovers the input atlas grid, preferring the sidecar written
// when the atlas was packed.
func repackLayout(cfg *config.Config) (atlas.Layout, error) {
	metaPath := cfg.RepackMeta
	if metaPath == "" {
		metaPath = emitter.SidecarPath(cfg.InputPath)
	}

	meta, err := emitter.ReadMetadata(metaPath)
	if err == nil {
		fmt.Printf("[*] Input atlas geometry from %s\n", metaPath)
		return atlas.NewLayout(meta.FrameCount, meta.Cols, meta.CellW, meta.CellH, meta.Padding), nil
	}

	if cfg.RepackCols > 0 && cfg.RepackCellW > 0 && cfg.RepackCellH > 0 && cfg.RepackCount > 0 {
		return atlas.NewLayout(cfg.RepackCount, cfg.RepackCols, cfg.RepackCellW, cfg.RepackCellH, 0), nil
	}

	return atlas.Layout{}, fmt.Errorf("no metadata sidecar at %s and no explicit grid flags: %w", metaPath, err)
}

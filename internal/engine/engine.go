package engine

import (
	"fmt"
	"time"

	"github.com/xiaobai/spritepack/internal/analyzer"
	"github.com/xiaobai/spritepack/internal/atlas"
	"github.com/xiaobai/spritepack/internal/config"
	"github.com/xiaobai/spritepack/internal/emitter"
	"github.com/xiaobai/spritepack/internal/selector"
	"github.com/xiaobai/spritepack/internal/source"
	"github.com/xiaobai/spritepack/internal/system"
	"github.com/xiaobai/spritepack/internal/transform"
)

// Project binds one atlas run: a frame source, the run parameters, and the
// output paths. The pipeline is single-threaded; each stage finishes before
// the next starts, and the canvas is the only large allocation.
type Project struct {
	Config *config.Config
	Source source.Source
}

func NewProject(cfg *config.Config, src source.Source) *Project {
	return &Project{Config: cfg, Source: src}
}

func (p *Project) Run() error {
	startTime := time.Now()

	n := p.Source.FrameCount()
	if n == 0 {
		return fmt.Errorf("source contains no frames")
	}

	nativeW, nativeH := p.Source.FrameSize()

	fmt.Println("--- [SPRITEPACK] ---")
	fmt.Printf("[*] Input: %s | Frames: %d | Native size: %dx%d\n", p.Config.InputPath, n, nativeW, nativeH)

	if p.Config.AnalyzeOnly {
		return p.runAnalysis(n)
	}

	// The motion policy is the only one that needs the difference signal.
	var signal []float64
	if p.Config.Policy == config.PolicyMotionWindow {
		fmt.Println("[*] Computing inter-frame difference signal...")
		analyzeStart := time.Now()
		var err error
		signal, err = analyzer.DifferenceSignal(p.Source)
		if err != nil {
			return fmt.Errorf("motion analysis: %w", err)
		}
		fmt.Printf("[*] Signal mean %.2f, threshold %.2f (%.2fs)\n",
			analyzer.Mean(signal), analyzer.Threshold(signal), time.Since(analyzeStart).Seconds())
	}

	k := p.Config.FrameCount
	if p.Config.Policy == config.PolicyExplicitRange {
		k = p.Config.RangeEnd - p.Config.RangeStart + 1
	}

	sel, err := selector.Select(p.Config.Policy, n, k, selector.Params{
		HeadCap:    p.Config.HeadCap,
		RangeStart: p.Config.RangeStart,
		RangeEnd:   p.Config.RangeEnd,
		Signal:     signal,
	})
	if err != nil {
		return err
	}
	fmt.Printf("[*] Policy %s selected %d frames, range %d-%d\n",
		p.Config.Policy, len(sel), sel[0], sel[len(sel)-1])

	cellW, cellH := nativeW, nativeH
	switch {
	case p.Config.CellWidth > 0:
		cellW, cellH = p.Config.CellWidth, p.Config.CellHeight
	case p.Config.Scale > 0:
		cellW, cellH = transform.ScaledSize(nativeW, nativeH, p.Config.Scale)
	}
	if cellW <= 0 || cellH <= 0 {
		return fmt.Errorf("resolved cell size %dx%d is not positive", cellW, cellH)
	}

	layout := atlas.NewLayout(len(sel), p.Config.Cols, cellW, cellH, p.Config.Padding)
	bounds := layout.Bounds()
	fmt.Printf("[*] Atlas: %d cols x %d rows, cell %dx%d, canvas %dx%d\n",
		layout.Cols, layout.Rows, cellW, cellH, bounds.Dx(), bounds.Dy())

	system.CheckCanvasMemory(layout.CanvasBytes())

	packStart := time.Now()
	canvas, err := atlas.Pack(p.Source, sel, layout)
	if err != nil {
		return err
	}
	packTime := time.Since(packStart)

	fmt.Printf("[*] Writing %s...\n", p.Config.OutputPath)
	writeStart := time.Now()
	if err := emitter.WritePNG(canvas, p.Config.OutputPath); err != nil {
		return err
	}

	meta := &emitter.Metadata{
		CellW:         cellW,
		CellH:         cellH,
		FrameCount:    len(sel),
		Cols:          layout.Cols,
		Rows:          layout.Rows,
		Padding:       layout.Padding,
		FPSHint:       p.Config.FPSHint,
		Policy:        p.Config.Policy,
		SourceStart:   sel[0],
		SourceEnd:     sel[len(sel)-1],
		SourceIndices: sel,
	}
	metaPath := emitter.SidecarPath(p.Config.OutputPath)
	if err := emitter.WriteMetadata(meta, metaPath); err != nil {
		return fmt.Errorf("writing metadata sidecar: %w", err)
	}
	writeTime := time.Since(writeStart)

	fmt.Printf("[+] Metadata: %s\n", metaPath)
	printAnimatorSnippet(meta)
	fmt.Printf("[+++] Done in %.2fs (pack %.2fs, write %.2fs)\n",
		time.Since(startTime).Seconds(), packTime.Seconds(), writeTime.Seconds())
	return nil
}

// runAnalysis prints the difference table and detected stalls, then stops.
func (p *Project) runAnalysis(n int) error {
	signal, err := analyzer.DifferenceSignal(p.Source)
	if err != nil {
		return err
	}

	mean := analyzer.Mean(signal)
	tau := analyzer.Threshold(signal)

	fmt.Println("frame | difference to previous")
	fmt.Println("------------------------------")
	for i, d := range signal {
		marker := ""
		if d < tau {
			marker = "  <- quiet"
		}
		fmt.Printf("%5d | %8.2f%s\n", i+1, d, marker)
	}

	fmt.Printf("\n[*] Mean difference: %.2f | Stall threshold: %.2f\n", mean, tau)

	runs := analyzer.QuiescentRuns(signal)
	if len(runs) == 0 {
		fmt.Println("[*] No stall intervals detected")
		return nil
	}
	fmt.Printf("[*] Found %d stall interval(s):\n", len(runs))
	for i, r := range runs {
		fmt.Printf("    %d: frames %d-%d (%d frames)\n", i+1, r.Start, r.End, r.Len())
	}
	return nil
}

// printAnimatorSnippet emits the frame-animator configuration block the
// consuming component expects.
func printAnimatorSnippet(m *emitter.Metadata) {
	fmt.Printf(`
<SpriteAnimation
  frameWidth={%d}
  frameHeight={%d}
  frameCount={%d}
  framesPerRow={%d}
  fps={%d}
  isPlaying={true}
/>
`, m.CellW, m.CellH, m.FrameCount, m.Cols, m.FPSHint)
}

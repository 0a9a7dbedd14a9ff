package analyzer

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Probe resolution for the difference signal. Every frame is reduced to this
// size before comparison so the analysis cost is O(N) regardless of native
// resolution.
const (
	ProbeWidth  = 192
	ProbeHeight = 108
)

// Empirical constants for quiescent-run detection: a frame pair is quiet
// below 30% of the mean difference, and only runs longer than five frames
// count as a stall. Pinned, not derived.
const (
	QuietFactor = 0.3
	MinRunLen   = 5
)

// FrameSource is the slice of the loader the analyzer needs.
type FrameSource interface {
	FrameCount() int
	LoadFrame(index int) (*image.NRGBA, error)
}

// Run is a maximal interval [Start, End] of the difference signal whose
// values all sit below the quiescence threshold.
type Run struct {
	Start int
	End   int
}

func (r Run) Len() int {
	return r.End - r.Start + 1
}

// DifferenceSignal computes the inter-frame motion signal: D[i] is the mean
// absolute per-channel difference between the probe-scaled frames i and i+1,
// in [0, 255]. Only two probes and one full frame are held at a time.
func DifferenceSignal(src FrameSource) ([]float64, error) {
	n := src.FrameCount()
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 frames to compare, have %d", n)
	}

	d := make([]float64, 0, n-1)
	var prev *image.NRGBA
	for i := 0; i < n; i++ {
		frame, err := src.LoadFrame(i)
		if err != nil {
			return nil, fmt.Errorf("loading frame %d: %w", i, err)
		}
		probe := downscale(frame)
		if prev != nil {
			d = append(d, meanAbsDiff(prev, probe))
		}
		prev = probe
	}
	return d, nil
}

func downscale(frame *image.NRGBA) *image.NRGBA {
	probe := image.NewNRGBA(image.Rect(0, 0, ProbeWidth, ProbeHeight))
	xdraw.BiLinear.Scale(probe, probe.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	return probe
}

func meanAbsDiff(a, b *image.NRGBA) float64 {
	sum := 0.0
	for i := range a.Pix {
		delta := float64(a.Pix[i]) - float64(b.Pix[i])
		if delta < 0 {
			delta = -delta
		}
		sum += delta
	}
	return sum / float64(len(a.Pix))
}

// Mean of a difference signal.
func Mean(d []float64) float64 {
	if len(d) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range d {
		sum += v
	}
	return sum / float64(len(d))
}

// Threshold returns the quiescence cutoff for a signal.
func Threshold(d []float64) float64 {
	return QuietFactor * Mean(d)
}

// QuiescentRuns scans the signal once and returns every maximal interval of
// values below Threshold(d) that is longer than MinRunLen frames.
func QuiescentRuns(d []float64) []Run {
	tau := Threshold(d)
	var runs []Run
	start := -1
	for i, v := range d {
		if v < tau {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start > MinRunLen {
				runs = append(runs, Run{Start: start, End: i - 1})
			}
			start = -1
		}
	}
	if start >= 0 && len(d)-start > MinRunLen {
		runs = append(runs, Run{Start: start, End: len(d) - 1})
	}
	return runs
}

// MaxActivityWindow returns the smallest start index a in [0, N-k] whose
// k-frame window [a, a+k) has the greatest cumulative motion. A window's
// motion is the sum of the k-1 adjacent differences inside it, D[a..a+k-2],
// so every candidate window weighs the same number of terms. Ties keep the
// smallest a.
func MaxActivityWindow(d []float64, k int) (int, error) {
	if k <= 0 {
		return 0, fmt.Errorf("window size must be positive, got %d", k)
	}
	if len(d) == 0 {
		return 0, fmt.Errorf("empty difference signal")
	}

	frames := len(d) + 1
	if k >= frames {
		return 0, nil
	}

	best, bestStart := -1.0, 0
	for a := 0; a+k <= frames; a++ {
		sum := 0.0
		for i := a; i <= a+k-2; i++ {
			sum += d[i]
		}
		if sum > best {
			best, bestStart = sum, a
		}
	}
	return bestStart, nil
}

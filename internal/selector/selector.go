package selector

import (
	"fmt"
	"log"

	"github.com/xiaobai/spritepack/internal/analyzer"
)

// Policy produces the ordered frame indices for one run. n is the number of
// available frames, k the requested count.
type Policy interface {
	Indices(n, k int) ([]int, error)
}

// Uniform picks k evenly spaced indices across [0, n-1], always including
// both endpoints when k >= 2.
type Uniform struct{}

func (Uniform) Indices(n, k int) ([]int, error) {
	return uniformStride(n, k)
}

func uniformStride(n, k int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("no frames to select from")
	}
	if k <= 0 {
		return nil, fmt.Errorf("target frame count must be positive, got %d", k)
	}
	if n <= k {
		if n < k {
			log.Printf("[!] Only %d frames available for a target of %d, using all of them", n, k)
		}
		return fullRange(n), nil
	}
	if k == 1 {
		return []int{0}, nil
	}

	// floor(i * (n-1)/(k-1)) in exact integer arithmetic; float rounding
	// can lose the n-1 endpoint at i = k-1.
	indices := make([]int, k)
	for i := 0; i < k; i++ {
		indices[i] = i * (n - 1) / (k - 1)
	}
	return indices, nil
}

// HeadCap is uniform selection restricted to the prefix [0, Cap). Used to
// bypass a known-bad tail, like idle frames at the end of a render.
type HeadCap struct {
	Cap int
}

func (h HeadCap) Indices(n, k int) ([]int, error) {
	if h.Cap <= 0 {
		return nil, fmt.Errorf("head cap must be positive, got %d", h.Cap)
	}
	m := h.Cap
	if m > n {
		log.Printf("[!] Head cap %d exceeds frame count %d, using the full sequence", m, n)
		m = n
	}
	return uniformStride(m, k)
}

// MotionWindow selects the contiguous k-frame window with the greatest
// cumulative inter-frame difference.
type MotionWindow struct {
	Signal []float64
}

func (m MotionWindow) Indices(n, k int) ([]int, error) {
	if len(m.Signal) != n-1 {
		return nil, fmt.Errorf("difference signal has %d entries for %d frames", len(m.Signal), n)
	}
	if k >= n {
		if k > n {
			log.Printf("[!] Only %d frames available for a window of %d, using all of them", n, k)
		}
		return fullRange(n), nil
	}
	start, err := analyzer.MaxActivityWindow(m.Signal, k)
	if err != nil {
		return nil, err
	}
	indices := make([]int, k)
	for i := range indices {
		indices[i] = start + i
	}
	return indices, nil
}

// ExplicitRange selects the inclusive index range [Start, End]; the target
// count k is ignored.
type ExplicitRange struct {
	Start int
	End   int
}

func (r ExplicitRange) Indices(n, _ int) ([]int, error) {
	if r.Start < 0 || r.End < r.Start {
		return nil, fmt.Errorf("invalid frame range [%d, %d]", r.Start, r.End)
	}
	if r.End >= n {
		return nil, fmt.Errorf("frame range [%d, %d] exceeds sequence of %d frames", r.Start, r.End, n)
	}
	indices := make([]int, r.End-r.Start+1)
	for i := range indices {
		indices[i] = r.Start + i
	}
	return indices, nil
}

func fullRange(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// Check enforces the post-selection invariants: strictly increasing indices,
// all inside [0, n).
func Check(indices []int, n int) error {
	if len(indices) == 0 {
		return fmt.Errorf("empty selection")
	}
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("index %d out of range [0, %d)", idx, n)
		}
		if i > 0 && idx <= indices[i-1] {
			return fmt.Errorf("indices not strictly increasing at position %d: %d after %d", i, idx, indices[i-1])
		}
	}
	return nil
}

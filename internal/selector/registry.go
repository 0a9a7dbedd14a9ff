package selector

import (
	"fmt"

	"github.com/xiaobai/spritepack/internal/config"
)

// Params carries the policy-specific inputs collected by the caller.
type Params struct {
	HeadCap    int
	RangeStart int
	RangeEnd   int
	Signal     []float64 // required by motion_window
}

// New creates a selection policy by name.
func New(variant string, p Params) (Policy, error) {
	switch variant {
	case config.PolicyUniform:
		return Uniform{}, nil
	case config.PolicyHeadCap:
		return HeadCap{Cap: p.HeadCap}, nil
	case config.PolicyMotionWindow:
		return MotionWindow{Signal: p.Signal}, nil
	case config.PolicyExplicitRange:
		return ExplicitRange{Start: p.RangeStart, End: p.RangeEnd}, nil
	default:
		return nil, fmt.Errorf("unknown selection policy: %s", variant)
	}
}

// Select runs a policy and verifies the result.
func Select(variant string, n, k int, p Params) ([]int, error) {
	policy, err := New(variant, p)
	if err != nil {
		return nil, err
	}
	indices, err := policy.Indices(n, k)
	if err != nil {
		return nil, err
	}
	if err := Check(indices, n); err != nil {
		return nil, fmt.Errorf("policy %s produced an invalid selection: %w", variant, err)
	}
	return indices, nil
}

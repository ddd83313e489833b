package trafficlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedCycleThreshold(t *testing.T) {
	for _, t0 := range []float64{0, 7, 37.5} {
		for elapsed, want := range map[float64]bool{14: false, 15: true, 16: true} {
			p := NewFixedCycle(T_FIXED)
			s := newFakeSignal(true, t0, 0, 0)
			got := p.Decide(s.state(t0+elapsed), nil)
			assert.Equal(t, want, got, "t0=%v elapsed=%v", t0, elapsed)
			if want {
				assert.Equal(t, []float64{t0 + elapsed}, s.commits)
			} else {
				assert.Empty(t, s.commits)
			}
		}
	}
}

func TestFixedCycleIgnoresQueues(t *testing.T) {
	p := NewFixedCycle(T_FIXED)
	s := newFakeSignal(true, 0, 0, 50)
	assert.False(t, p.Decide(s.state(3), obs(true, 0, 50)))
}

func TestFixedCyclePeriodic(t *testing.T) {
	p := NewFixedCycle(T_FIXED)
	s := newFakeSignal(true, 0, 0, 0)
	switches := 0
	for step := 0; step < 61; step++ {
		if p.Decide(s.state(float64(step)), nil) {
			switches++
		}
	}
	assert.Equal(t, 4, switches)
	assert.Equal(t, []float64{15, 30, 45, 60}, s.commits)
}

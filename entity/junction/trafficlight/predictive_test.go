package trafficlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
)

func newTestPredictive() *Predictive {
	c := config.Default().Policy
	return NewPredictive(c.Predictive, NewLongestQueue(c.LongestQueue.Interval))
}

// warmUp 冷启动一步：在t0时刻提交t0，并记录当前车辆数
func warmUp(t *testing.T, p *Predictive, s *fakeSignal, t0 float64) {
	t.Helper()
	p.Decide(s.state(t0), obs(s.phase, 0, 0))
	assert.True(t, p.estimator.initialized)
}

func TestPredictiveHorizonClamp(t *testing.T) {
	p := newTestPredictive()
	for dt, want := range map[float64]float64{1: 5, 5: 5, 12: 12, 20: 20, 30: 20} {
		assert.Equal(t, want, p.Horizon(dt), "dt=%v", dt)
	}
}

func TestPredictiveColdStart(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 3, 7)
	prev := obs(true, 2, 5)

	got := p.Decide(s.state(30), prev)

	// 冷启动先提交当前时间，再按最长队列策略决策
	twin := newFakeSignal(true, 30, 3, 7)
	want := NewLongestQueue(T_FIXED).Decide(twin.state(30), prev)
	assert.Equal(t, want, got)
	assert.False(t, got)
	assert.Equal(t, []float64{30}, s.commits)
	assert.True(t, p.estimator.initialized)
	assert.Equal(t, 3, p.estimator.q1Prev)
	assert.Equal(t, 7, p.estimator.q2Prev)
}

func TestPredictiveStarvationOverride(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 4, 4)
	warmUp(t, p, s, 0)

	// 预测差为0，小于阈值，但dt达到MaxGreen
	assert.True(t, p.Decide(s.state(20), obs(true, 4, 4)))
	assert.Equal(t, 20., s.prev)

	s2 := newFakeSignal(false, 0, 9, 1)
	p2 := newTestPredictive()
	warmUp(t, p2, s2, 0)
	assert.True(t, p2.Decide(s2.state(27), obs(false, 9, 1)))
}

func TestPredictiveCommitGate(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 2, 2)
	warmUp(t, p, s, 0)

	// 方向2在5个时间单位内从2增长到12，预测为12+2*5=22，方向1为2
	s.setCounts(2, 12)
	assert.True(t, p.Decide(s.state(5), obs(true, 2, 12)))
	// dt=5 < MinGreen，返回切换但不提交
	assert.Equal(t, 0., s.prev)
	assert.Equal(t, []float64{0}, s.commits)
}

func TestPredictiveCommitsAfterMinGreen(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 2, 2)
	warmUp(t, p, s, 0)

	s.setCounts(2, 10)
	assert.True(t, p.Decide(s.state(12), obs(true, 2, 10)))
	assert.Equal(t, 12., s.prev)
}

func TestPredictiveKeepsGreenWhenFavoredIsBusier(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 2, 2)
	warmUp(t, p, s, 0)

	s.setCounts(14, 2)
	assert.False(t, p.Decide(s.state(12), obs(true, 14, 2)))
	assert.Equal(t, 0., s.prev)
	// 上一步车辆数在未切换时同样更新
	assert.Equal(t, 14, p.estimator.q1Prev)
	assert.Equal(t, 2, p.estimator.q2Prev)
}

func TestPredictiveUsesForecastNotLiveCounts(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(false, 0, 10, 2)
	warmUp(t, p, s, 0)

	// 当前方向1车辆更多，但方向1正在快速消散、方向2快速增长
	// dt=10, horizon=10: p1 = 6 + (-0.4)*10 = 2, p2 = 6 + 0.4*10 = 10
	s.setCounts(6, 6)
	assert.False(t, p.Decide(s.state(10), obs(false, 6, 6)))

	p = newTestPredictive()
	s = newFakeSignal(true, 0, 10, 2)
	warmUp(t, p, s, 0)
	s.setCounts(6, 6)
	assert.True(t, p.Decide(s.state(10), obs(true, 6, 6)))
	assert.Equal(t, 10., s.prev)
}

func TestPredictiveBelowThreshold(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 2, 2)
	warmUp(t, p, s, 0)

	// p1 = 2, p2 = 3 + (1/12)*12 = 4，差值2小于阈值
	s.setCounts(2, 3)
	assert.False(t, p.Decide(s.state(12), obs(true, 2, 3)))
	assert.Empty(t, s.commits[1:])
}

func TestPredictiveEpsilonFloor(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 0, 0)
	warmUp(t, p, s, 0)

	// 同一时刻再次决策，dt=0，不会除零
	s.setCounts(0, 1)
	assert.NotPanics(t, func() {
		assert.True(t, p.Decide(s.state(0), obs(true, 0, 1)))
	})
	assert.Equal(t, 0., s.prev)
}

func TestPredictiveResetPreventsStateLeak(t *testing.T) {
	p := newTestPredictive()

	// episode k：积累历史
	s := newFakeSignal(true, 0, 1, 1)
	warmUp(t, p, s, 0)
	for step := 1; step <= 8; step++ {
		s.setCounts(step, 3*step)
		p.Decide(s.state(float64(step)), obs(true, step, 3*step))
	}
	assert.True(t, p.estimator.initialized)

	p.Reset()
	assert.False(t, p.estimator.initialized)

	// episode k+1 的首步与全新实例一致
	fresh := newTestPredictive()
	a := newFakeSignal(true, 0, 5, 9)
	b := newFakeSignal(true, 0, 5, 9)
	assert.Equal(t,
		fresh.Decide(b.state(0), obs(true, 5, 9)),
		p.Decide(a.state(0), obs(true, 5, 9)),
	)
	assert.Equal(t, fresh.estimator, p.estimator)
	assert.Equal(t, b.commits, a.commits)
}

func TestPredictiveRequiresPrevious(t *testing.T) {
	p := newTestPredictive()
	s := newFakeSignal(true, 0, 0, 0)
	assert.Panics(t, func() { p.Decide(s.state(0), nil) })
}

func TestLiveCountsSumsAllLanes(t *testing.T) {
	s := newFakeSignal(true, 0, 3, 4)
	s.lanes[0][1].vehicles = 2
	s.lanes[1][1].vehicles = 5
	q1, q2 := LiveCounts(s)
	assert.Equal(t, 5, q1)
	assert.Equal(t, 9, q2)
}

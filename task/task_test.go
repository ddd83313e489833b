package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/task"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
)

func smallConfig() config.Config {
	c := config.Default()
	c.Scenario.Vehicles = 8
	c.Scenario.Caution = 1
	c.Scenario.Approaches[0].ArrivalRate = 0.3
	c.Scenario.Approaches[1].ArrivalRate = 0.3
	return c
}

type trace struct {
	obs     []entity.Observation
	rewards []float64
	done    bool
	wait    float64
}

// runAlternating 每15步切换一次直到结束
func runAlternating(t *testing.T, ctx *task.Context) trace {
	tr := trace{}
	ctx.Reset(false)
	for i := 1; ; i++ {
		obs, reward, done, truncated := ctx.Step(i%15 == 0)
		require.False(t, truncated)
		tr.obs = append(tr.obs, obs)
		tr.rewards = append(tr.rewards, reward)
		if done {
			tr.done = true
			tr.wait = ctx.CurrentAverageWaitTime()
			return tr
		}
	}
}

func TestResetInitialObservation(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	obs := ctx.Reset(false)
	assert.Equal(t, entity.Observation{Phase: true}, obs)
	assert.Equal(t, 0., ctx.Clock().T)
	assert.Equal(t, 1, ctx.Episode())

	s := ctx.State()
	assert.Equal(t, 0., s.T)
	assert.True(t, s.Phase())
	assert.False(t, s.NonEmptyJunction)
	assert.Equal(t, [2][]int{{0, 0}, {0, 0}}, s.LaneVehicles)
	assert.Equal(t, 0., s.Signal.PrevUpdateTime())
	assert.Len(t, s.Signal.Approaches()[0], 2)
}

func TestEpisodeCompletes(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	tr := runAlternating(t, ctx)
	assert.True(t, tr.done)
	assert.False(t, ctx.CollisionDetected())
	assert.Equal(t, 8, ctx.Generated())
	assert.Equal(t, 8, ctx.Junction().Completed())
	assert.GreaterOrEqual(t, tr.wait, 0.)
	for i, r := range tr.rewards {
		o := tr.obs[i]
		assert.Equal(t, -float64(o.N1+o.N2), r)
	}
}

func TestSameSeedSameEpisode(t *testing.T) {
	a := runAlternating(t, task.NewContext(smallConfig()))
	b := runAlternating(t, task.NewContext(smallConfig()))
	assert.Equal(t, a, b)
}

func TestEpisodesUseDifferentSeeds(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	a := runAlternating(t, ctx)
	b := runAlternating(t, ctx)
	assert.Equal(t, 2, ctx.Episode())
	assert.NotEqual(t, a.obs, b.obs)
	// 新环境的第2个episode与之相同
	other := task.NewContext(smallConfig())
	runAlternating(t, other)
	assert.Equal(t, b, runAlternating(t, other))
}

func TestTruncatedAtMaxTime(t *testing.T) {
	c := smallConfig()
	c.Scenario.Vehicles = 100
	c.Control.Step.MaxTime = 5
	ctx := task.NewContext(c)
	ctx.Reset(false)
	for _i := 0; _i < 4; _i++ {
		_, _, done, truncated := ctx.Step(false)
		require.False(t, done)
		require.False(t, truncated)
	}
	_, _, done, truncated := ctx.Step(false)
	assert.False(t, done)
	assert.True(t, truncated)
	assert.Equal(t, 5., ctx.Clock().T)
}

func TestNoVehiclesIsDoneImmediately(t *testing.T) {
	c := smallConfig()
	c.Scenario.Vehicles = 0
	ctx := task.NewContext(c)
	ctx.Reset(false)
	_, reward, done, truncated := ctx.Step(false)
	assert.True(t, done)
	assert.False(t, truncated)
	assert.Equal(t, 0., reward)
	assert.Equal(t, 0., ctx.CurrentAverageWaitTime())
}

func TestSwitchActionFlipsPhase(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	ctx.Reset(false)
	obs, _, _, _ := ctx.Step(true)
	assert.False(t, obs.Phase)
	assert.False(t, ctx.State().Phase())
	// 清空期间的切换请求被忽略
	obs, _, _, _ = ctx.Step(true)
	assert.False(t, obs.Phase)
	assert.Equal(t, 1, ctx.Junction().Signal().Ignored())
}

func TestRenderDoesNotDisturbEpisode(t *testing.T) {
	a := task.NewContext(smallConfig())
	b := task.NewContext(smallConfig())
	a.Reset(true)
	b.Reset(false)
	for i := 1; i <= 30; i++ {
		oa, ra, _, _ := a.Step(i%15 == 0)
		ob, rb, _, _ := b.Step(i%15 == 0)
		require.Equal(t, ob, oa)
		require.Equal(t, rb, ra)
	}
}

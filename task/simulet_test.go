package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
)

func TestHeartbeatDisabled(t *testing.T) {
	old := *heartBeatInterval
	defer func() { *heartBeatInterval = old }()

	for _, interval := range []int{0, -1} {
		*heartBeatInterval = interval
		ctx := NewContext(config.Default())
		ctx.Reset(false)
		assert.NotPanics(t, func() {
			for _i := 0; _i < 3; _i++ {
				ctx.Step(false)
			}
		})
		assert.Equal(t, int32(3), ctx.clock.InternalStep)
	}
}

func TestArrivalsFollowLaneWeights(t *testing.T) {
	c := config.Default()
	c.Scenario.Vehicles = 20
	c.Scenario.Approaches[0].ArrivalRate = 0.5
	c.Scenario.Approaches[0].LaneWeights = []float64{0, 1}
	c.Scenario.Approaches[1].ArrivalRate = 0
	ctx := NewContext(c)
	ctx.Reset(false)
	roads := ctx.junction.Roads()
	for _i := 0; _i < 60; _i++ {
		ctx.Step(false)
		assert.Equal(t, 0, roads[0].Lanes()[0].VehicleCount())
		assert.Equal(t, 0, roads[1].VehicleCount())
	}
	assert.Positive(t, ctx.Generated())
	assert.Positive(t, roads[0].Lanes()[1].VehicleCount()+ctx.junction.Completed())
}

package task

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/clock"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/junction"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/lane"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/road"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/container"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/randengine"
)

const (
	COLLISION_REWARD = -100. // 发生碰撞的一步的奖励
)

// arrivalSource 单个进口道的到达过程
// 说明：进口道总到达率为车道数乘以每车道到达率，到达车辆按车道权重分配到车道
type arrivalSource struct {
	approach    int
	rate        float64
	laneWeights []float64
}

// Context 仿真任务上下文
// 功能：单路口两相位的仿真环境，按episode重置并逐步推进
// 说明：
// 1. 第k次Reset使用seed+k作为随机种子，相同配置的两个环境产生相同的episode序列
// 2. 不是线程安全的，每个环境只能由一个goroutine驱动
type Context struct {
	config config.Config

	// 时钟
	clock *clock.Clock
	// 受控路口
	junction *junction.Junction

	// 本episode的随机数引擎
	generator *randengine.Engine
	// 每条车道的下一次到达，以到达时间为优先级
	arrivals *container.PriorityQueue[arrivalSource]
	// 本episode已生成的车辆数
	generated int

	// 已开始的episode数
	episode int
	// 是否渲染
	render   bool
	renderer *renderer
}

// NewContext 创建新的仿真任务上下文
// 功能：根据场景配置构建两个进口道及受控路口
// 参数：c-已通过Validate的配置
// 返回：尚未Reset的仿真环境
func NewContext(c config.Config) *Context {
	s := c.Scenario
	if len(s.Approaches) != 2 {
		log.Panicf("scenario must define exactly two approaches, got %d", len(s.Approaches))
	}
	var roads [2]*road.Road
	laneID := int32(0)
	for i, a := range s.Approaches {
		lanes := make([]*lane.Lane, a.Lanes)
		for k := range lanes {
			lanes[k] = lane.New(laneID, i, s.LaneLength, s.MinGap)
			laneID++
		}
		roads[i] = road.New(int32(i), a.Name, i, lanes)
	}
	ctx := &Context{
		config:   c,
		clock:    clock.New(c.Control.Step),
		junction: junction.New(0, roads, s.ClearanceTime, s.Caution),
		arrivals: container.NewPriorityQueue[arrivalSource](),
	}
	ctx.renderer = newRenderer(ctx)
	log.Debugf("scenario with %d lanes, %d vehicles per episode", ctx.totalLanes(), s.Vehicles)
	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) Junction() *junction.Junction {
	return ctx.junction
}

func (ctx *Context) Config() config.Config {
	return ctx.config
}

// Episode 已开始的episode数
func (ctx *Context) Episode() int {
	return ctx.episode
}

// Generated 本episode已生成的车辆数
func (ctx *Context) Generated() int {
	return ctx.generated
}

// Reset 开始新的episode
// 功能：重置时钟、路口、信号灯与到达过程
// 参数：render-本episode是否逐步渲染
// 返回：初始观测
func (ctx *Context) Reset(render bool) entity.Observation {
	seed := ctx.config.Control.Seed + uint64(ctx.episode)
	ctx.episode++
	ctx.render = render
	ctx.generator = randengine.New(seed)
	ctx.clock.Init()
	ctx.junction.Reset(ctx.generator)
	ctx.generated = 0

	// 每个进口道一个泊松到达过程
	ctx.arrivals.Clear()
	for i, a := range ctx.config.Scenario.Approaches {
		if a.ArrivalRate <= 0 {
			continue
		}
		source := arrivalSource{
			approach:    i,
			rate:        a.ArrivalRate * float64(a.Lanes),
			laneWeights: a.Weights(),
		}
		ctx.arrivals.Push(source, ctx.generator.Exponential(source.rate))
	}
	ctx.arrivals.Heapify()

	log.Debugf("episode %d reset with seed %d", ctx.episode, seed)
	if ctx.render {
		ctx.renderer.frame()
	}
	return ctx.observation()
}

// Step 推进一步
// 功能：应用切换决策并推进仿真一个时间步
// 参数：action-是否请求切换相位
// 返回：观测、奖励、是否结束、是否截断
// 算法说明：
// 1. 切换请求写入信号灯buffer，准备阶段生效（全红清空期间忽略）
// 2. 准备阶段生成到达车辆，更新阶段推进车道与路口
// 3. 奖励为停车等待车辆数的相反数，发生碰撞的一步为COLLISION_REWARD
// 4. 全部车辆驶离或发生碰撞时结束，先到达最长模拟时间则截断
func (ctx *Context) Step(action bool) (obs entity.Observation, reward float64, done bool, truncated bool) {
	if action {
		ctx.junction.Signal().RequestSwitch()
	}
	ctx.prepare()
	ctx.update()

	obs = ctx.observation()
	collision := ctx.junction.CollisionDetected()
	if collision {
		reward = COLLISION_REWARD
	} else {
		reward = -float64(obs.N1 + obs.N2)
	}
	done = collision || (ctx.generated == ctx.config.Scenario.Vehicles && ctx.junction.Cleared())
	truncated = !done && ctx.clock.Expired()

	if ctx.render {
		ctx.renderer.frame()
	}
	return
}

// State 信控策略读取的路口快照
func (ctx *Context) State() entity.State {
	return entity.State{
		T:                ctx.clock.T,
		Signal:           ctx.junction.Signal(),
		NonEmptyJunction: ctx.junction.NonEmpty(),
		LaneVehicles:     ctx.junction.LaneVehicles(),
	}
}

func (ctx *Context) CollisionDetected() bool {
	return ctx.junction.CollisionDetected()
}

// CurrentAverageWaitTime 已驶入路口车辆的平均等待时间
func (ctx *Context) CurrentAverageWaitTime() float64 {
	return ctx.junction.AverageWaitTime()
}

func (ctx *Context) observation() entity.Observation {
	waiting := ctx.junction.WaitingCounts()
	return entity.Observation{
		Phase:            ctx.junction.Signal().Phase(),
		N1:               waiting[entity.APPROACH_1],
		N2:               waiting[entity.APPROACH_2],
		NonEmptyJunction: ctx.junction.NonEmpty(),
	}
}

func (ctx *Context) String() string {
	return fmt.Sprintf("Context{Episode=%d, T=%v, Generated=%d/%d, Completed=%d}",
		ctx.episode, ctx.clock, ctx.generated, ctx.config.Scenario.Vehicles, ctx.junction.Completed())
}

// totalLanes 场景中的车道总数
func (ctx *Context) totalLanes() int {
	return lo.SumBy(ctx.config.Scenario.Approaches, func(a config.Approach) int { return a.Lanes })
}

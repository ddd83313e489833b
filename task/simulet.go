package task

import (
	"flag"

	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/vehicle"
)

const (
	minCrossSpeedFactor = 0.5 // 通过路口的速度系数下限，实际速度为maxV*U[0.5, 1)
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数（不为正时关闭）")
)

// prepare 准备阶段，每步执行一次
// 功能：生成本步到达的车辆，处理信号灯切换请求，车辆进入车道
// 算法说明：
// 1. 弹出到达时间早于本步结束时刻的到达事件，生成车辆，按车道权重抽取车道并放入其上游
// 2. 对应进口道的下一次到达时间按指数分布抽样后重新入队
// 3. 生成车辆数达到上限后不再生成
// 4. 路口准备：信号灯切换生效，上游车辆进入车道
func (ctx *Context) prepare() {
	s := ctx.config.Scenario
	roads := ctx.junction.Roads()
	end := ctx.clock.T + ctx.clock.DT
	for ctx.generated < s.Vehicles && ctx.arrivals.Len() > 0 {
		source, at := ctx.arrivals.First()
		if at >= end {
			break
		}
		ctx.arrivals.HeapPop()
		crossTime := s.BoxLength / (s.MaxSpeed * ctx.generator.Uniform(minCrossSpeedFactor, 1))
		v := vehicle.New(int32(ctx.generated), source.approach, s.VehicleLength, s.MaxSpeed, at, crossTime)
		laneIndex := int(ctx.generator.DiscreteDistribution(source.laneWeights))
		roads[source.approach].Arrive(laneIndex, v)
		ctx.generated++
		ctx.arrivals.HeapPush(source, at+ctx.generator.Exponential(source.rate))
	}

	ctx.junction.Prepare(ctx.clock.DT)
}

// update 更新阶段，每步执行一次
// 功能：推进车道与路口，然后推进时钟并按间隔输出心跳日志（间隔不为正时不输出）
func (ctx *Context) update() {
	ctx.junction.Update(ctx.clock.DT)
	ctx.clock.Advance()

	if *heartBeatInterval > 0 && ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f) generated %d, completed %d, box %d",
			ctx.clock.InternalStep,
			hour, minute, second,
			ctx.generated, ctx.junction.Completed(), ctx.junction.BoxCount(),
		)
	}
}

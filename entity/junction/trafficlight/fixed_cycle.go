package trafficlight

import "github.com/tsinghua-fib-lab/agentsociety-tlc/entity"

// FixedCycle 固定周期策略
// 功能：与需求无关的周期性切换，距离上次切换满interval即切换
type FixedCycle struct {
	interval float64
}

func NewFixedCycle(interval float64) *FixedCycle {
	return &FixedCycle{interval: interval}
}

func (p *FixedCycle) Name() string {
	return FIXED_CYCLE
}

// Decide 忽略队列信息与上一步状态
func (p *FixedCycle) Decide(state entity.State, _ *entity.Observation) bool {
	signal := state.Signal
	if !Elapsed(state.T, signal.PrevUpdateTime(), p.interval) {
		return false
	}
	signal.SetPrevUpdateTime(state.T)
	return true
}

func (p *FixedCycle) Reset() {}

// 提供Max Pressure信号灯控制策略
// 每个相位时间结束后比较两个方向的pressure，保持或切换到pressure最大的方向
package trafficlight

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/container"
)

// MaxPressure 最大压力信控策略
// 功能：以进口车道车辆数作为方向压力，相位时间到达后选择压力最大的方向
// 说明：
// 1. 同一方向连续延长不超过maxRepeatCount次，之后切换到压力第二大的方向
// 2. 延长只记在策略内部的holdStart，信号灯的上次切换时间只在切换时写入
type MaxPressure struct {
	phaseTime      float64
	maxRepeatCount int
	repeatCount    int     // 当前相位重复的次数
	holdStart      float64 // 最近一次延长的时间
}

func NewMaxPressure(c config.MaxPressure) *MaxPressure {
	return &MaxPressure{
		phaseTime:      c.PhaseTime,
		maxRepeatCount: c.MaxRepeatCount,
		repeatCount:    1,
	}
}

func (p *MaxPressure) Name() string {
	return MAX_PRESSURE
}

func (p *MaxPressure) Reset() {
	p.repeatCount = 1
	p.holdStart = 0
}

// Decide 最大压力决策
// 算法说明：
//  1. 距离上次切换或上次延长不足相位时间则不切换
//  2. 计算两个方向的压力并放入小顶堆（压力取负）
//  3. 压力最大的方向仍是当前放行方向时，未达最大重复次数则延长（只记录holdStart），
//     否则切换到第二大压力的方向
//  4. 压力最大的方向不是当前放行方向时切换
func (p *MaxPressure) Decide(state entity.State, prev *entity.Observation) bool {
	obs := mustPrev(MAX_PRESSURE, prev)
	signal := state.Signal
	if !Elapsed(state.T, max(signal.PrevUpdateTime(), p.holdStart), p.phaseTime) {
		return false
	}
	current := obs.Favored()
	approaches := signal.Approaches()
	pressure := lo.Map(approaches[:], func(lanes []entity.ILane, _ int) int {
		return lo.SumBy(lanes, func(l entity.ILane) int { return l.VehicleCount() })
	})
	pressureHeap := container.NewPriorityQueue[int]()
	// 压力相同时当前方向优先
	pressureHeap.Push(current, -float64(pressure[current]))
	pressureHeap.Push(1-current, -float64(pressure[1-current]))
	pressureHeap.Heapify()

	maxIndex, _ := pressureHeap.HeapPop()
	if maxIndex == current {
		if p.repeatCount >= p.maxRepeatCount {
			maxIndex, _ = pressureHeap.HeapPop()
		} else {
			p.repeatCount++
			p.holdStart = state.T
			return false
		}
	}
	p.repeatCount = 1
	signal.SetPrevUpdateTime(state.T)
	log.Debugf("mp t=%.1f pressure=%v switch to approach %d", state.T, pressure, maxIndex)
	return true
}

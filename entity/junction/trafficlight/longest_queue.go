package trafficlight

import "github.com/tsinghua-fib-lab/agentsociety-tlc/entity"

// LongestQueue 最长队列优先策略（LQF）
// 功能：不做预测，满足最短间隔后向上一步等待车辆更多的方向切换
// 说明：同时作为预测策略冷启动步的决策
type LongestQueue struct {
	interval float64
}

func NewLongestQueue(interval float64) *LongestQueue {
	return &LongestQueue{interval: interval}
}

func (p *LongestQueue) Name() string {
	return LONGEST_QUEUE
}

// Decide 最长队列优先决策
// 参数：state-当前快照，prev-上一步的分解状态（必需）
// 返回：是否切换
// 算法说明：
// 1. 距离上次切换不足interval则不切换，也不写入任何状态
// 2. 当前放行方向1但方向2车辆更多，或放行方向2但方向1车辆更多时切换
// 3. 车辆数相等时不切换
// 4. 切换时提交当前时间
func (p *LongestQueue) Decide(state entity.State, prev *entity.Observation) bool {
	obs := mustPrev(LONGEST_QUEUE, prev)
	signal := state.Signal
	if !Elapsed(state.T, signal.PrevUpdateTime(), p.interval) {
		return false
	}
	if !favorsLesser(obs.Phase, float64(obs.N1), float64(obs.N2)) {
		return false
	}
	signal.SetPrevUpdateTime(state.T)
	return true
}

func (p *LongestQueue) Reset() {}

// favorsLesser 当前放行方向的车辆数严格少于另一方向
func favorsLesser(phase bool, n1, n2 float64) bool {
	if phase {
		return n1 < n2
	}
	return n1 > n2
}

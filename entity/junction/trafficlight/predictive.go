package trafficlight

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
)

// growthEstimator 队列增长率估计器
// 功能：保存上一步两组进口道的实时车辆数
// 说明：生命周期为单个episode，episode开始时必须reset
type growthEstimator struct {
	initialized    bool
	q1Prev, q2Prev int
}

func (e *growthEstimator) reset() {
	*e = growthEstimator{}
}

func (e *growthEstimator) observe(q1, q2 int) {
	e.q1Prev, e.q2Prev = q1, q2
	e.initialized = true
}

// growth 两组进口道的车辆数增长率，dt不小于eps
func (e *growthEstimator) growth(q1, q2 int, dt, eps float64) (g1, g2 float64) {
	d := math.Max(dt, eps)
	return float64(q1-e.q1Prev) / d, float64(q2-e.q2Prev) / d
}

// Predictive 预测式最长队列优先策略（PLQF）
// 功能：根据队列增长率外推一段时间后的队列长度，按预测的不平衡提前切换
type Predictive struct {
	c         config.Predictive
	fallback  *LongestQueue   // 冷启动步使用的决策
	estimator growthEstimator // 每个episode的增长率状态
}

// NewPredictive 创建预测式最长队列优先策略
// 参数：c-策略参数，fallback-冷启动时委托的最长队列策略
func NewPredictive(c config.Predictive, fallback *LongestQueue) *Predictive {
	return &Predictive{c: c, fallback: fallback}
}

func (p *Predictive) Name() string {
	return PREDICTIVE
}

// Reset 清空增长率估计器，使下一个episode的首步成为冷启动
func (p *Predictive) Reset() {
	p.estimator.reset()
}

// Horizon 预测时长
// 功能：信号保持越久向前看得越远，限制在[HorizonMin, HorizonMax]内
// 参数：dt-距离上次提交切换的时间
func (p *Predictive) Horizon(dt float64) float64 {
	return lo.Clamp(dt, p.c.HorizonMin, p.c.HorizonMax)
}

// Decide 预测式最长队列优先决策
// 参数：state-当前快照，prev-上一步的分解状态（必需，只使用其中的相位）
// 返回：是否切换
// 算法说明：
// 1. 统计两组进口车道上的实时车辆数q1、q2（不受最短间隔限制）
// 2. 冷启动：记录q1、q2，提交当前时间，本步委托最长队列策略决策
// 3. dt为距离上次提交切换的时间，增长率为(当前-上一步)/max(dt, epsilon)
// 4. 预测q = 当前 + 增长率 * clamp(dt, HorizonMin, HorizonMax)
// 5. 预测差不小于SwitchThreshold且当前放行方向预测更空闲时切换
// 6. dt >= MaxGreen时强制切换
// 7. 只有切换且dt >= MinGreen时才提交当前时间，返回值不受MinGreen限制
// 8. 无论是否切换都记录本步的q1、q2
func (p *Predictive) Decide(state entity.State, prev *entity.Observation) bool {
	obs := mustPrev(PREDICTIVE, prev)
	signal := state.Signal
	q1, q2 := LiveCounts(signal)

	if !p.estimator.initialized {
		p.estimator.observe(q1, q2)
		signal.SetPrevUpdateTime(state.T)
		return p.fallback.Decide(state, prev)
	}

	dt := state.T - signal.PrevUpdateTime()
	g1, g2 := p.estimator.growth(q1, q2, dt, p.c.Epsilon)
	horizon := p.Horizon(dt)
	predicted1 := float64(q1) + g1*horizon
	predicted2 := float64(q2) + g2*horizon
	diff := math.Abs(predicted1 - predicted2)

	switched := diff >= p.c.SwitchThreshold && favorsLesser(obs.Phase, predicted1, predicted2)
	if dt >= p.c.MaxGreen {
		// 防止某一方向长期得不到绿灯
		switched = true
	}
	if switched && dt >= p.c.MinGreen {
		signal.SetPrevUpdateTime(state.T)
	}
	log.Tracef("plqf t=%.1f dt=%.1f q=(%d,%d) predicted=(%.2f,%.2f) switch=%v",
		state.T, dt, q1, q2, predicted1, predicted2, switched)

	p.estimator.observe(q1, q2)
	return switched
}

// LiveCounts 两组进口车道上的实时车辆数
func LiveCounts(signal entity.ISignal) (q1, q2 int) {
	approaches := signal.Approaches()
	count := func(l entity.ILane) int { return l.VehicleCount() }
	return lo.SumBy(approaches[entity.APPROACH_1], count), lo.SumBy(approaches[entity.APPROACH_2], count)
}

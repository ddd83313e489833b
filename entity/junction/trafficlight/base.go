package trafficlight

// 各策略共享的默认时间阈值（仿真时间单位）
const (
	T_FIXED = 15. // 固定周期与最长队列策略的最短切换间隔

	MIN_GREEN        = 10.  // 预测策略：低于该时长的切换不提交
	MAX_GREEN        = 20.  // 预测策略：超过该时长强制切换
	SWITCH_THRESHOLD = 5.   // 预测策略：预测队列差阈值
	EPSILON          = 1e-3 // 预测策略：增长率计算的时间下限
	HORIZON_MIN      = 5.
	HORIZON_MAX      = 20.
)

// Elapsed 最短间隔判定
// 功能：判断距离上次提交切换是否已经过去threshold时长
// 参数：t-当前仿真时间，prevUpdateTime-上次提交切换的时间，threshold-最短间隔
// 返回：t-prevUpdateTime >= threshold
func Elapsed(t, prevUpdateTime, threshold float64) bool {
	return t-prevUpdateTime >= threshold
}

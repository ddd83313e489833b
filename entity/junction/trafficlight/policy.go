package trafficlight

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
)

// 策略名
const (
	FIXED_CYCLE   = "fc"
	LONGEST_QUEUE = "lqf"
	PREDICTIVE    = "plqf"
	MAX_PRESSURE  = "mp"
)

var (
	ErrUnknownPolicy = errors.New("unknown traffic light policy")
)

// IPolicy 信控策略接口
// 每个仿真步调用一次Decide，返回本步是否切换信号灯
type IPolicy interface {
	Name() string
	// Decide 根据当前快照与上一步的分解状态做出决策
	// 策略只会在决定切换时写入state.Signal的上次切换时间
	Decide(state entity.State, prev *entity.Observation) bool
	// Reset 清除episode内的策略状态，每个episode开始前调用
	Reset()
}

// Methods 所有可用的策略名
func Methods() []string {
	return []string{FIXED_CYCLE, LONGEST_QUEUE, PREDICTIVE, MAX_PRESSURE}
}

// NewPolicy 根据策略名创建策略实例
// 参数：name-策略名，c-策略参数
// 返回：策略实例，策略名未知时返回ErrUnknownPolicy
func NewPolicy(name string, c config.Policy) (IPolicy, error) {
	switch name {
	case FIXED_CYCLE:
		return NewFixedCycle(c.FixedCycle.Interval), nil
	case LONGEST_QUEUE:
		return NewLongestQueue(c.LongestQueue.Interval), nil
	case PREDICTIVE:
		return NewPredictive(c.Predictive, NewLongestQueue(c.LongestQueue.Interval)), nil
	case MAX_PRESSURE:
		return NewMaxPressure(c.MaxPressure), nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPolicy, name, Methods())
	}
}

// mustPrev 上一步状态是策略输入契约的一部分，缺失时立即失败
func mustPrev(policy string, prev *entity.Observation) entity.Observation {
	if prev == nil {
		log.Panicf("%s: previous observation is required", policy)
	}
	return *prev
}

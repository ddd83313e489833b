package junction

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
)

// signalRuntime 信号灯运行时数据
type signalRuntime struct {
	phase     bool    // true表示方向1绿灯
	clearance float64 // 剩余全红清空时间
}

// Signal 两相位信号灯
// 功能：维护当前相位、切换后的全红清空时间以及策略写入的上次切换时间
// 说明：
// 1. 切换请求写入buffer，在下一步Prepare时生效
// 2. 清空期间两个方向都不能驶入路口，期间收到的切换请求被忽略
// 3. prevUpdateTime只由信控策略写入，必须单调不减
type Signal struct {
	approaches    [2][]entity.ILane
	clearanceTime float64

	snapshot     signalRuntime // Prepare时写入，供车道读取
	runtime      signalRuntime // 运行时数据
	switchBuffer bool          // 切换请求buffer

	prevUpdateTime float64

	switches int // 已生效的切换次数
	ignored  int // 清空期间被忽略的切换次数
}

// NewSignal 创建信号灯
// 参数：approaches-两组进口车道，clearanceTime-切换后的全红清空时间
func NewSignal(approaches [2][]entity.ILane, clearanceTime float64) *Signal {
	s := &Signal{
		approaches:    approaches,
		clearanceTime: clearanceTime,
	}
	s.Reset()
	return s
}

func (s *Signal) String() string {
	return fmt.Sprintf("Signal{Phase=%v, Clearance=%.1f, PrevUpdateTime=%.1f}", s.snapshot.phase, s.snapshot.clearance, s.prevUpdateTime)
}

// Reset 恢复到方向1绿灯、无清空、上次切换时间为0的初始状态
func (s *Signal) Reset() {
	s.runtime = signalRuntime{phase: true}
	s.snapshot = s.runtime
	s.switchBuffer = false
	s.prevUpdateTime = 0
	s.switches = 0
	s.ignored = 0
}

func (s *Signal) Phase() bool {
	return s.snapshot.phase
}

func (s *Signal) PrevUpdateTime() float64 {
	return s.prevUpdateTime
}

// SetPrevUpdateTime 提交切换时间
// 说明：时间倒退说明调用方违反了约定，直接panic
func (s *Signal) SetPrevUpdateTime(t float64) {
	if t < s.prevUpdateTime {
		log.Panicf("signal: prev_update_time must not decrease: %f -> %f", s.prevUpdateTime, t)
	}
	s.prevUpdateTime = t
}

func (s *Signal) Approaches() [2][]entity.ILane {
	return s.approaches
}

// RequestSwitch 请求切换相位，下一次Prepare时生效
func (s *Signal) RequestSwitch() {
	s.switchBuffer = true
}

// Prepare 准备阶段
// 功能：处理切换请求并写入snapshot
func (s *Signal) Prepare() {
	if s.switchBuffer {
		if s.runtime.clearance > 0 {
			s.ignored++
			log.Debugf("switch request ignored during clearance (%.1f left)", s.runtime.clearance)
		} else {
			s.runtime.phase = !s.runtime.phase
			s.runtime.clearance = s.clearanceTime
			s.switches++
		}
		s.switchBuffer = false
	}
	s.snapshot = s.runtime
}

// Update 更新阶段，推进清空计时
func (s *Signal) Update(dt float64) {
	s.runtime.clearance = math.Max(0, s.runtime.clearance-dt)
}

// Green 判断指定方向当前是否可以驶入路口
func (s *Signal) Green(approach int) bool {
	if s.InClearance() {
		return false
	}
	if s.snapshot.phase {
		return approach == entity.APPROACH_1
	}
	return approach == entity.APPROACH_2
}

// InClearance 是否处于全红清空
func (s *Signal) InClearance() bool {
	return s.snapshot.clearance > 0
}

// Switches 已生效的切换次数
func (s *Signal) Switches() int {
	return s.switches
}

// Ignored 清空期间被忽略的切换请求次数
func (s *Signal) Ignored() int {
	return s.ignored
}

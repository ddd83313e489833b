package entity

import "fmt"

// State 每步交给信控策略的只读路口快照
type State struct {
	T                float64  // 当前仿真时间
	Signal           ISignal  // 受控信号灯
	NonEmptyJunction bool     // 路口内部是否有车
	LaneVehicles     [2][]int // 两组进口车道各自的车辆数
}

// Phase 当前相位
func (s State) Phase() bool {
	return s.Signal.Phase()
}

// Observation 仿真环境每步返回的分解状态
// 功能：对应(signal_phase, n_approach1, n_approach2, non_empty_junction)
// 说明：N1/N2为各方向停车等待的车辆数
type Observation struct {
	Phase            bool
	N1               int
	N2               int
	NonEmptyJunction bool
}

func (o Observation) String() string {
	return fmt.Sprintf("Observation{Phase=%v, N1=%d, N2=%d, NonEmptyJunction=%v}", o.Phase, o.N1, o.N2, o.NonEmptyJunction)
}

// Favored 当前相位放行的方向
func (o Observation) Favored() int {
	if o.Phase {
		return APPROACH_1
	}
	return APPROACH_2
}

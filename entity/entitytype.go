package entity

// 方向常量，对应信号灯的两个竞争进口道
const (
	APPROACH_1 = 0 // 相位为true时放行的方向
	APPROACH_2 = 1 // 相位为false时放行的方向
)

// entity/lane/lane.go的依赖倒置
type ILane interface {
	ID() int32         // 车道ID
	Approach() int     // 所属进口道方向（APPROACH_1|APPROACH_2）
	VehicleCount() int // 车道上的车辆数（行驶中与排队中）
	WaitingCount() int // 车道上停车等待的车辆数
}

// entity/junction/signal.go的依赖倒置
// 策略只读取相位与车道，只在决定切换时写入上次切换时间
type ISignal interface {
	Phase() bool                 // 当前相位，true表示方向1绿灯
	PrevUpdateTime() float64     // 上次提交切换的仿真时间
	SetPrevUpdateTime(t float64) // 提交切换时间，必须单调不减
	Approaches() [2][]ILane      // 两组进口车道
}

package vehicle

import "fmt"

// Vehicle 车辆实体
// 功能：记录车辆属性、当前速度以及累计等待时间
// 说明：车辆在车道上的位置保存在车道链表节点中
type Vehicle struct {
	id        int32
	approach  int     // 所属进口道方向
	length    float64 // 车长
	maxV      float64 // 最大速度
	v         float64 // 当前速度
	arrivedAt float64 // 到达（生成）时刻
	wait      float64 // 累计等待时间
	crossTime float64 // 通过路口内部所需时间
}

// New 创建车辆
// 参数：id-车辆ID，approach-进口道方向，length-车长，maxV-最大速度，arrivedAt-生成时刻，crossTime-路口通行时间
func New(id int32, approach int, length, maxV, arrivedAt, crossTime float64) *Vehicle {
	return &Vehicle{
		id:        id,
		approach:  approach,
		length:    length,
		maxV:      maxV,
		arrivedAt: arrivedAt,
		crossTime: crossTime,
	}
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle{ID=%d, Approach=%d, V=%.2f, Wait=%.1f}", v.id, v.approach, v.v, v.wait)
}

func (v *Vehicle) ID() int32 {
	return v.id
}

func (v *Vehicle) Approach() int {
	return v.approach
}

// V 当前速度
func (v *Vehicle) V() float64 {
	return v.v
}

// Length 车长
func (v *Vehicle) Length() float64 {
	return v.length
}

// MaxV 最大速度
func (v *Vehicle) MaxV() float64 {
	return v.maxV
}

func (v *Vehicle) ArrivedAt() float64 {
	return v.arrivedAt
}

// CrossTime 通过路口内部所需时间
func (v *Vehicle) CrossTime() float64 {
	return v.crossTime
}

// Wait 累计等待时间
func (v *Vehicle) Wait() float64 {
	return v.wait
}

// Move 记录一步的运动
// 参数：ds-本步位移，dt-时间步长，waiting-本步是否视为停车等待
func (v *Vehicle) Move(ds, dt float64, waiting bool) {
	v.v = ds / dt
	if waiting {
		v.wait += dt
	}
}

// AddWait 车道外（上游溢出）等待
func (v *Vehicle) AddWait(dt float64) {
	v.v = 0
	v.wait += dt
}

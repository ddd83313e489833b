package lane

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/vehicle"
)

const (
	waitSpeedThreshold = 0.1 // 低于该速度视为停车等待
)

// Lane 进口车道实体
// 功能：管理车道上的车辆，按跟驰约束推进车辆并在允许时让头车驶入路口
// 说明：车辆位置S为车头到车道起点的距离，停止线位于S=length处
type Lane struct {
	id       int32
	approach int     // 所属进口道方向
	length   float64 // 车道长度
	minGap   float64 // 最小车间距

	vehicles laneList
}

// New 创建车道
// 参数：id-车道ID，approach-进口道方向，length-车道长度，minGap-最小车间距
func New(id int32, approach int, length, minGap float64) *Lane {
	return &Lane{
		id:       id,
		approach: approach,
		length:   length,
		minGap:   minGap,
		vehicles: newLaneList(fmt.Sprintf("lane %d vehicles", id)),
	}
}

func (l *Lane) String() string {
	return fmt.Sprintf("Lane{ID=%d, Approach=%d, Vehicles=%d}", l.id, l.approach, l.VehicleCount())
}

func (l *Lane) ID() int32 {
	return l.id
}

func (l *Lane) Approach() int {
	return l.approach
}

func (l *Lane) Length() float64 {
	return l.length
}

// VehicleCount 车道上的车辆数（行驶中与排队中，不含尚未写入链表的车辆）
func (l *Lane) VehicleCount() int {
	return l.vehicles.list.Len()
}

// WaitingCount 车道上停车等待的车辆数
func (l *Lane) WaitingCount() int {
	return lo.CountBy(l.vehicles.list.Values(), func(v *vehicle.Vehicle) bool {
		return v.V() < waitSpeedThreshold
	})
}

// Positions 从车道起点到停止线依次返回车辆位置
func (l *Lane) Positions() []float64 {
	return l.vehicles.list.Keys()
}

// HasRoom 判断车道起点是否有空间容纳一辆新车
// 说明：同一步内已缓冲的新车同样占用起点
func (l *Lane) HasRoom() bool {
	if len(l.vehicles.addBuffer) > 0 {
		return false
	}
	first := l.vehicles.list.First()
	return first == nil || first.S-first.L()-l.minGap >= 0
}

// AddVehicle 新车辆到达车道起点，在下一次Prepare时写入
func (l *Lane) AddVehicle(v *vehicle.Vehicle) {
	if v.Approach() != l.approach {
		log.Panicf("vehicle %d of approach %d added to lane %d of approach %d", v.ID(), v.Approach(), l.id, l.approach)
	}
	l.vehicles.add(v)
}

// Prepare 准备阶段，将新到达的车辆写入链表
func (l *Lane) Prepare() {
	l.vehicles.prepare()
}

// Update 更新阶段，推进车道上的所有车辆
// 功能：从停止线向车道起点依次推进车辆，头车在允许时驶入路口
// 参数：dt-时间步长，mayEnter-头车到达停止线时是否允许驶入路口
// 返回：本步驶入路口的车辆，没有则为nil
// 算法说明：
// 1. 每辆车最多前进maxV*dt，且不超过前车车尾减最小车间距
// 2. 头车到达停止线时询问mayEnter，允许则从车道移除并返回
// 3. 每步每条车道最多一辆车驶入路口，其余头车停在停止线
// 4. 位移小于waitSpeedThreshold*dt的车辆累计等待时间
func (l *Lane) Update(dt float64, mayEnter func(v *vehicle.Vehicle) bool) (entered *vehicle.Vehicle) {
	list := l.vehicles.list
	limit := mathutil.INF // 前车约束
	for node := list.Last(); node != nil; {
		prev := node.Prev()
		v := node.Value
		target := math.Max(node.S, math.Min(node.S+v.MaxV()*dt, limit))
		front := node.Next() == nil
		if front && target >= l.length && entered == nil && mayEnter(v) {
			v.Move(target-node.S, dt, false)
			list.Remove(node)
			entered = v
			limit = mathutil.INF
		} else {
			if front {
				target = math.Min(target, l.length)
			}
			ds := target - node.S
			v.Move(ds, dt, ds < waitSpeedThreshold*dt)
			node.S = target
			limit = target - v.Length() - l.minGap
		}
		node = prev
	}
	return
}

// Clear 清空车道
func (l *Lane) Clear() {
	l.vehicles.clear()
}

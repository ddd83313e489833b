package junction

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/lane"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/road"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/vehicle"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/randengine"
)

// occupant 路口内部的车辆
type occupant struct {
	v         *vehicle.Vehicle
	remaining float64 // 剩余通行时间
}

// Junction 受控路口
// 功能：管理信号灯、两个进口道以及路口内部的车辆，检测冲突并统计等待时间
// 说明：路口内部同时存在两个方向的车辆即视为碰撞
type Junction struct {
	id      int32
	signal  *Signal
	roads   [2]*road.Road
	caution float64 // 绿灯头车发现路口内有冲突车辆时让行的概率

	generator *randengine.Engine

	occupants []occupant
	collision bool
	completed int     // 驶入路口的车辆数
	totalWait float64 // 驶入路口的车辆的累计等待时间
}

// New 创建路口
// 参数：id-路口ID，roads-两个方向的进口道，clearanceTime-全红清空时间，caution-让行概率
func New(id int32, roads [2]*road.Road, clearanceTime, caution float64) *Junction {
	for i, r := range roads {
		if r.Approach() != i {
			log.Panicf("Junction %d: road %v at position %d has approach %d", id, r, i, r.Approach())
		}
	}
	return &Junction{
		id:        id,
		roads:     roads,
		caution:   caution,
		signal:    NewSignal([2][]entity.ILane{roads[0].ILanes(), roads[1].ILanes()}, clearanceTime),
		occupants: make([]occupant, 0),
	}
}

func (j *Junction) ID() int32 {
	return j.id
}

func (j *Junction) String() string {
	return fmt.Sprintf("Junction %d", j.id)
}

func (j *Junction) Signal() *Signal {
	return j.signal
}

func (j *Junction) Roads() [2]*road.Road {
	return j.roads
}

// Reset 开始新的episode
// 参数：generator-本episode的随机数引擎，用于让行判断
func (j *Junction) Reset(generator *randengine.Engine) {
	j.generator = generator
	j.signal.Reset()
	for _, r := range j.roads {
		r.Clear()
	}
	j.occupants = j.occupants[:0]
	j.collision = false
	j.completed = 0
	j.totalWait = 0
}

// Prepare 准备阶段，处理信号灯切换请求与车辆进入车道
func (j *Junction) Prepare(dt float64) {
	j.signal.Prepare()
	for _, r := range j.roads {
		r.Prepare(dt)
	}
}

// Update 更新阶段
// 功能：推进路口内部车辆与进口道车辆，统计驶入路口车辆的等待时间并检测碰撞
// 参数：dt-时间步长
// 算法说明：
// 1. 路口内部车辆的剩余通行时间减少dt，耗尽的车辆驶离
// 2. 依次推进两个进口道，驶入路口的车辆记入内部并累计其等待时间
// 3. 路口内部同时存在两个方向的车辆时记录碰撞
// 4. 推进信号灯清空计时
func (j *Junction) Update(dt float64) {
	j.occupants = lo.Filter(j.occupants, func(o occupant, _ int) bool {
		return o.remaining-dt > 0
	})
	for i := range j.occupants {
		j.occupants[i].remaining -= dt
	}
	for _, r := range j.roads {
		for _, v := range r.Update(dt, j.mayEnter) {
			j.occupants = append(j.occupants, occupant{v: v, remaining: v.CrossTime()})
			j.completed++
			j.totalWait += v.Wait()
		}
	}
	if !j.collision && j.conflicting(entity.APPROACH_1) && j.conflicting(entity.APPROACH_2) {
		j.collision = true
		log.Debugf("%v: collision with %d vehicles in box", j, len(j.occupants))
	}
	j.signal.Update(dt)
}

// mayEnter 头车到达停止线时是否驶入路口
func (j *Junction) mayEnter(v *vehicle.Vehicle) bool {
	if !j.signal.Green(v.Approach()) {
		return false
	}
	if j.conflicting(1-v.Approach()) && j.generator.PTrue(j.caution) {
		return false
	}
	return true
}

// conflicting 路口内部是否有指定方向的车辆
func (j *Junction) conflicting(approach int) bool {
	return lo.ContainsBy(j.occupants, func(o occupant) bool {
		return o.v.Approach() == approach
	})
}

// NonEmpty 路口内部是否有车
func (j *Junction) NonEmpty() bool {
	return len(j.occupants) > 0
}

// BoxCount 路口内部车辆数
func (j *Junction) BoxCount() int {
	return len(j.occupants)
}

func (j *Junction) CollisionDetected() bool {
	return j.collision
}

// Completed 已驶入路口的车辆数
func (j *Junction) Completed() int {
	return j.completed
}

// AverageWaitTime 已驶入路口车辆的平均等待时间，没有车辆时为0
func (j *Junction) AverageWaitTime() float64 {
	if j.completed == 0 {
		return 0
	}
	return j.totalWait / float64(j.completed)
}

// WaitingCounts 两个方向停车等待的车辆数
func (j *Junction) WaitingCounts() [2]int {
	return [2]int{j.roads[0].WaitingCount(), j.roads[1].WaitingCount()}
}

// LaneVehicles 两个方向每条车道的车辆数
func (j *Junction) LaneVehicles() [2][]int {
	var counts [2][]int
	for i, r := range j.roads {
		counts[i] = lo.Map(r.Lanes(), func(l *lane.Lane, _ int) int {
			return l.VehicleCount()
		})
	}
	return counts
}

// Cleared 进口道、上游与路口内部均无车辆
func (j *Junction) Cleared() bool {
	return !j.NonEmpty() && lo.EveryBy(j.roads[:], func(r *road.Road) bool {
		return r.VehicleCount() == 0 && r.UpstreamCount() == 0
	})
}

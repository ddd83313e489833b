package road

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/lane"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/vehicle"
)

// Road 进口道实体
// 功能：表示同一方向驶入路口的一组车道，以及因车道起点无空间而在上游等待的车辆
// 说明：上游等待的车辆不计入车道车辆数，但同样累计等待时间
type Road struct {
	id       int32
	name     string
	approach int
	lanes    []*lane.Lane

	upstream [][]*vehicle.Vehicle // 每条车道上游等待进入的车辆，先到先入
}

// New 创建进口道
// 参数：id-道路ID，name-名称，approach-方向，lanes-车道，按从左到右排序
func New(id int32, name string, approach int, lanes []*lane.Lane) *Road {
	if len(lanes) == 0 {
		log.Panicf("Road %d has no lane", id)
	}
	for _, l := range lanes {
		if l.Approach() != approach {
			log.Panicf("Road %d of approach %d contains lane %d of approach %d", id, approach, l.ID(), l.Approach())
		}
	}
	return &Road{
		id:       id,
		name:     name,
		approach: approach,
		lanes:    lanes,
		upstream: make([][]*vehicle.Vehicle, len(lanes)),
	}
}

func (r *Road) ID() int32 {
	return r.id
}

func (r *Road) String() string {
	return fmt.Sprintf("Road %d(%s)", r.id, r.name)
}

func (r *Road) Name() string {
	return r.name
}

func (r *Road) Approach() int {
	return r.approach
}

// Lanes 获取车道，按从左到右排序
func (r *Road) Lanes() []*lane.Lane {
	return r.lanes
}

// ILanes 以依赖倒置接口形式获取车道，供信控策略读取
func (r *Road) ILanes() []entity.ILane {
	return lo.Map(r.lanes, func(l *lane.Lane, _ int) entity.ILane {
		return l
	})
}

// VehicleCount 车道上的车辆总数
func (r *Road) VehicleCount() int {
	return lo.SumBy(r.lanes, func(l *lane.Lane) int { return l.VehicleCount() })
}

// WaitingCount 停车等待的车辆总数（含上游等待）
func (r *Road) WaitingCount() int {
	return lo.SumBy(r.lanes, func(l *lane.Lane) int { return l.WaitingCount() }) + r.UpstreamCount()
}

// UpstreamCount 上游等待进入车道的车辆数
func (r *Road) UpstreamCount() int {
	return lo.SumBy(r.upstream, func(q []*vehicle.Vehicle) int { return len(q) })
}

// Arrive 车辆到达指定车道的上游
// 参数：laneIndex-车道序号，v-到达的车辆
func (r *Road) Arrive(laneIndex int, v *vehicle.Vehicle) {
	if laneIndex < 0 || laneIndex >= len(r.lanes) {
		log.Panicf("Road %d: lane index %d out of range [0, %d)", r.id, laneIndex, len(r.lanes))
	}
	r.upstream[laneIndex] = append(r.upstream[laneIndex], v)
}

// Prepare 准备阶段
// 功能：每条车道至多放入一辆上游等待的车辆，其余车辆累计等待时间，然后写入车道缓冲
func (r *Road) Prepare(dt float64) {
	for i, l := range r.lanes {
		q := r.upstream[i]
		if len(q) > 0 && l.HasRoom() {
			l.AddVehicle(q[0])
			q = q[1:]
		}
		for _, v := range q {
			v.AddWait(dt)
		}
		r.upstream[i] = q
		l.Prepare()
	}
}

// Update 更新阶段，推进所有车道
// 返回：本步驶入路口的车辆
func (r *Road) Update(dt float64, mayEnter func(v *vehicle.Vehicle) bool) []*vehicle.Vehicle {
	entered := make([]*vehicle.Vehicle, 0, len(r.lanes))
	for _, l := range r.lanes {
		if v := l.Update(dt, mayEnter); v != nil {
			entered = append(entered, v)
		}
	}
	return entered
}

// Clear 清空车道与上游
func (r *Road) Clear() {
	for i, l := range r.lanes {
		l.Clear()
		r.upstream[i] = nil
	}
}

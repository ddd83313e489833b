package lane

import (
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/vehicle"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/container"
)

// laneList 车道车辆列表
// 功能：在有序链表之外提供新到达车辆的缓冲区，缓冲区在prepare阶段写入链表
// 说明：新车辆总是从车道起点进入，因此写入链表头部
type laneList struct {
	list      *container.List[*vehicle.Vehicle]
	addBuffer []*vehicle.Vehicle
}

func newLaneList(id string) laneList {
	return laneList{
		list:      container.NewList[*vehicle.Vehicle](id),
		addBuffer: make([]*vehicle.Vehicle, 0),
	}
}

// prepare 将缓冲区中的车辆写入链表，位置为车道起点
func (l *laneList) prepare() {
	for _, v := range l.addBuffer {
		l.list.PushFront(container.NewListNode(0, v))
	}
	l.addBuffer = l.addBuffer[:0]
}

func (l *laneList) add(v *vehicle.Vehicle) {
	l.addBuffer = append(l.addBuffer, v)
}

func (l *laneList) clear() {
	l.list.Clear()
	l.addBuffer = l.addBuffer[:0]
}

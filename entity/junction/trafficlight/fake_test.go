package trafficlight

import "github.com/tsinghua-fib-lab/agentsociety-tlc/entity"

type fakeLane struct {
	id       int32
	approach int
	vehicles int
	waiting  int
}

func (l *fakeLane) ID() int32         { return l.id }
func (l *fakeLane) Approach() int     { return l.approach }
func (l *fakeLane) VehicleCount() int { return l.vehicles }
func (l *fakeLane) WaitingCount() int { return l.waiting }

// fakeSignal 两组进口道各两条车道，车辆数全部放在每组的第一条车道上
type fakeSignal struct {
	phase   bool
	prev    float64
	lanes   [2][]*fakeLane
	commits []float64
}

func newFakeSignal(phase bool, prev float64, q1, q2 int) *fakeSignal {
	s := &fakeSignal{phase: phase, prev: prev}
	for a := 0; a < 2; a++ {
		s.lanes[a] = []*fakeLane{
			{id: int32(2 * a), approach: a},
			{id: int32(2*a + 1), approach: a},
		}
	}
	s.setCounts(q1, q2)
	return s
}

func (s *fakeSignal) setCounts(q1, q2 int) {
	s.lanes[0][0].vehicles = q1
	s.lanes[1][0].vehicles = q2
}

func (s *fakeSignal) Phase() bool             { return s.phase }
func (s *fakeSignal) PrevUpdateTime() float64 { return s.prev }
func (s *fakeSignal) SetPrevUpdateTime(t float64) {
	s.prev = t
	s.commits = append(s.commits, t)
}
func (s *fakeSignal) Approaches() [2][]entity.ILane {
	var res [2][]entity.ILane
	for a, lanes := range s.lanes {
		for _, l := range lanes {
			res[a] = append(res[a], l)
		}
	}
	return res
}

func (s *fakeSignal) state(t float64) entity.State {
	return entity.State{T: t, Signal: s}
}

func obs(phase bool, n1, n2 int) *entity.Observation {
	return &entity.Observation{Phase: phase, N1: n1, N2: n2}
}

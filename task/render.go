package task

import (
	"fmt"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// renderer 文本渲染器
// 功能：将当前路口状态绘制为一帧文本并写入render日志
// 说明：每个格子对应一个车长加最小车间距，'>'为车辆，'|'为停止线
type renderer struct {
	ctx      *Context
	cellSize float64
	cells    int
}

func newRenderer(ctx *Context) *renderer {
	s := ctx.config.Scenario
	cellSize := s.VehicleLength + s.MinGap
	return &renderer{
		ctx:      ctx,
		cellSize: cellSize,
		cells:    int(math.Ceil(s.LaneLength / cellSize)),
	}
}

// draw 绘制当前帧
func (r *renderer) draw() string {
	j := r.ctx.junction
	signal := j.Signal()
	var b strings.Builder
	fmt.Fprintf(&b, "t=%v step=%d box=%d collision=%v\n", r.ctx.clock, r.ctx.clock.InternalStep, j.BoxCount(), j.CollisionDetected())
	for i, road := range j.Roads() {
		light := text.FgRed.Sprint("R")
		if signal.Green(i) {
			light = text.FgGreen.Sprint("G")
		} else if signal.InClearance() {
			light = text.FgYellow.Sprint("C")
		}
		fmt.Fprintf(&b, "%s %-12s upstream=%d\n", light, road.Name(), road.UpstreamCount())
		for _, l := range road.Lanes() {
			row := []byte(strings.Repeat(".", r.cells))
			for _, s := range l.Positions() {
				row[min(int(s/r.cellSize), r.cells-1)] = '>'
			}
			fmt.Fprintf(&b, "  %3d %s|\n", l.ID(), row)
		}
	}
	return b.String()
}

// frame 输出一帧
func (r *renderer) frame() {
	renderLog.Info("\n" + r.draw())
}

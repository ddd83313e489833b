package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
)

// Clock 仿真时钟
// 功能：管理单个episode内的仿真时间推进
// 说明：所有策略使用的“时间”都是这里的仿真时间，与墙上时钟无关
type Clock struct {
	DT       float64 // 每个模拟步时间间隔
	MAX_TIME float64 // episode最长模拟时间，到达后视为截断

	T            float64 // 当前时间
	InternalStep int32   // 当前步数
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置
// 返回：已初始化到0时刻的时钟
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:       stepConfig.Interval,
		MAX_TIME: stepConfig.MaxTime,
	}
	c.Init()
	return c
}

// Init 重置时钟到episode起点
func (c *Clock) Init() {
	c.InternalStep = 0
	c.T = 0
}

// Advance 推进一步
// 说明：用步数乘以步长计算时间，避免浮点累加误差
func (c *Clock) Advance() {
	c.InternalStep++
	c.T = float64(c.InternalStep) * c.DT
}

// Expired 判断是否已到达最长模拟时间
func (c *Clock) Expired() bool {
	return c.T >= c.MAX_TIME
}

// String 获取时钟的字符串表示（HH:MM:SS）
func (c *Clock) String() string {
	h, m, s := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, int(s))
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 功能：将当前时间分解为小时、分钟、秒三个部分
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

var (
	ErrApproachCount = errors.New("config: scenario must define exactly two approaches")
)

// Default 返回默认配置
// 功能：给出一套可以直接运行的配置，策略阈值与论文设定保持一致
// 返回：默认配置
func Default() Config {
	return Config{
		Control: Control{
			Step: ControlStep{
				Interval: 1,
				MaxTime:  3600,
			},
			Seed: 42,
		},
		Scenario: Scenario{
			Approaches: []Approach{
				{Name: "north-south", Lanes: 2, ArrivalRate: 0.08},
				{Name: "east-west", Lanes: 2, ArrivalRate: 0.05},
			},
			LaneLength:    100,
			MaxSpeed:      5,
			VehicleLength: 4.5,
			MinGap:        2,
			BoxLength:     12,
			ClearanceTime: 3,
			Caution:       0.95,
			Vehicles:      120,
		},
		Policy: Policy{
			FixedCycle:   FixedCycle{Interval: 15},
			LongestQueue: LongestQueue{Interval: 15},
			Predictive: Predictive{
				MinGreen:        10,
				MaxGreen:        20,
				SwitchThreshold: 5,
				Epsilon:         1e-3,
				HorizonMin:      5,
				HorizonMax:      20,
			},
			MaxPressure: MaxPressure{
				PhaseTime:      15,
				MaxRepeatCount: 3,
			},
		},
	}
}

// Load 读取YAML配置文件
// 功能：在默认配置之上覆盖文件中给出的字段，并做合法性检查
// 参数：path-配置文件路径，为空时直接使用默认配置
// 返回：配置与错误信息
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config file load err: %w", err)
	}
	return Parse(file)
}

// Parse 解析YAML配置数据
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("config parse err: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate 检查配置的合法性
// 功能：保证时间、几何参数为正，策略阈值之间的关系成立
// 返回：第一个不合法项对应的错误
func (c Config) Validate() error {
	if c.Control.Step.Interval <= 0 {
		return fmt.Errorf("config: control.step.interval must be positive, got %v", c.Control.Step.Interval)
	}
	if c.Control.Step.MaxTime <= 0 {
		return fmt.Errorf("config: control.step.max_time must be positive, got %v", c.Control.Step.MaxTime)
	}
	s := c.Scenario
	if len(s.Approaches) != 2 {
		return ErrApproachCount
	}
	for i, a := range s.Approaches {
		if a.Lanes <= 0 {
			return fmt.Errorf("config: approach %d must have at least one lane", i)
		}
		if a.ArrivalRate < 0 {
			return fmt.Errorf("config: approach %d arrival rate must not be negative", i)
		}
		if len(a.LaneWeights) > 0 {
			if len(a.LaneWeights) != a.Lanes {
				return fmt.Errorf("config: approach %d has %d lane weights for %d lanes", i, len(a.LaneWeights), a.Lanes)
			}
			if lo.SomeBy(a.LaneWeights, func(w float64) bool { return w < 0 }) || lo.Sum(a.LaneWeights) <= 0 {
				return fmt.Errorf("config: approach %d lane weights must be non-negative with a positive sum", i)
			}
		}
	}
	if s.Approaches[0].ArrivalRate+s.Approaches[1].ArrivalRate <= 0 && s.Vehicles > 0 {
		return fmt.Errorf("config: vehicles requested but all arrival rates are zero")
	}
	if s.LaneLength <= 0 || s.MaxSpeed <= 0 || s.VehicleLength <= 0 || s.BoxLength <= 0 {
		return fmt.Errorf("config: scenario geometry must be positive")
	}
	if s.MinGap < 0 || s.ClearanceTime < 0 || s.Vehicles < 0 {
		return fmt.Errorf("config: scenario min_gap, clearance_time and vehicles must not be negative")
	}
	if s.Caution < 0 || s.Caution > 1 {
		return fmt.Errorf("config: scenario caution must be in [0, 1], got %v", s.Caution)
	}
	if s.VehicleLength+s.MinGap > s.LaneLength {
		return fmt.Errorf("config: lane_length %v cannot hold a single vehicle", s.LaneLength)
	}
	p := c.Policy
	if p.FixedCycle.Interval <= 0 || p.LongestQueue.Interval <= 0 {
		return fmt.Errorf("config: policy intervals must be positive")
	}
	pr := p.Predictive
	if pr.MinGreen < 0 || pr.MaxGreen < 0 || pr.SwitchThreshold < 0 || pr.HorizonMin < 0 {
		return fmt.Errorf("config: policy.predictive min_green, max_green, switch_threshold and horizon_min must not be negative")
	}
	if pr.Epsilon <= 0 {
		return fmt.Errorf("config: policy.predictive.epsilon must be positive")
	}
	if pr.HorizonMin > pr.HorizonMax {
		return fmt.Errorf("config: policy.predictive.horizon_min %v > horizon_max %v", pr.HorizonMin, pr.HorizonMax)
	}
	if pr.MinGreen > pr.MaxGreen {
		return fmt.Errorf("config: policy.predictive.min_green %v > max_green %v", pr.MinGreen, pr.MaxGreen)
	}
	if p.MaxPressure.PhaseTime <= 0 || p.MaxPressure.MaxRepeatCount < 1 {
		return fmt.Errorf("config: policy.max_pressure needs positive phase_time and max_repeat_count")
	}
	return nil
}

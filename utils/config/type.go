package config

// ControlStep 指定模拟时间间隔与截断时间的配置项
// 功能：定义仿真时间控制参数
// 说明：MaxTime之前未完成的episode视为被截断
type ControlStep struct {
	Interval float64 `yaml:"interval"` // 每步的时间间隔
	MaxTime  float64 `yaml:"max_time"` // 单个episode允许的最长模拟时间
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step ControlStep `yaml:"step"`
	Seed uint64      `yaml:"seed"` // 随机种子，第k个episode使用seed+k
}

// Approach 单个进口道方向的配置
type Approach struct {
	Name        string    `yaml:"name"`         // 方向名称，仅用于日志与渲染
	Lanes       int       `yaml:"lanes"`        // 车道数
	ArrivalRate float64   `yaml:"arrival_rate"` // 每条车道的平均到达率（辆/单位时间）
	LaneWeights []float64 `yaml:"lane_weights"` // 到达车辆在各车道间的分配权重，为空时平均分配
}

// Weights 车道分配权重，未配置时每条车道权重为1
func (a Approach) Weights() []float64 {
	if len(a.LaneWeights) > 0 {
		return a.LaneWeights
	}
	weights := make([]float64, a.Lanes)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// Scenario 路口场景配置
// 功能：描述受控路口的几何与交通需求
// 说明：Approaches[0]对应相位为true时放行的方向
type Scenario struct {
	Approaches    []Approach `yaml:"approaches"`
	LaneLength    float64    `yaml:"lane_length"`    // 进口车道长度（米）
	MaxSpeed      float64    `yaml:"max_speed"`      // 车辆最大速度（米/单位时间）
	VehicleLength float64    `yaml:"vehicle_length"` // 车长（米）
	MinGap        float64    `yaml:"min_gap"`        // 最小车间距（米）
	BoxLength     float64    `yaml:"box_length"`     // 路口内部通行距离（米）
	ClearanceTime float64    `yaml:"clearance_time"` // 切换相位后的全红清空时间
	Caution       float64    `yaml:"caution"`        // 绿灯头车发现路口内有冲突车辆时让行的概率
	Vehicles      int        `yaml:"vehicles"`       // 每个episode生成的车辆总数
}

// FixedCycle 固定周期策略配置
type FixedCycle struct {
	Interval float64 `yaml:"interval"`
}

// LongestQueue 最长队列优先策略配置
type LongestQueue struct {
	Interval float64 `yaml:"interval"`
}

// Predictive 预测式最长队列优先策略配置
type Predictive struct {
	MinGreen        float64 `yaml:"min_green"`        // 低于该时长的切换不更新上次切换时间
	MaxGreen        float64 `yaml:"max_green"`        // 超过该时长强制切换
	SwitchThreshold float64 `yaml:"switch_threshold"` // 预测队列差的切换阈值
	Epsilon         float64 `yaml:"epsilon"`          // 增长率计算的时间下限
	HorizonMin      float64 `yaml:"horizon_min"`
	HorizonMax      float64 `yaml:"horizon_max"`
}

// MaxPressure 最大压力策略配置
type MaxPressure struct {
	PhaseTime      float64 `yaml:"phase_time"`       // 最大压力法相位时间
	MaxRepeatCount int     `yaml:"max_repeat_count"` // 每个相位最多重复的次数
}

// Policy 各信控策略的参数
type Policy struct {
	FixedCycle   FixedCycle   `yaml:"fixed_cycle"`
	LongestQueue LongestQueue `yaml:"longest_queue"`
	Predictive   Predictive   `yaml:"predictive"`
	MaxPressure  MaxPressure  `yaml:"max_pressure"`
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Control  Control  `yaml:"control"`  // 模拟过程控制
	Scenario Scenario `yaml:"scenario"` // 路口场景
	Policy   Policy   `yaml:"policy"`   // 信控策略参数
}

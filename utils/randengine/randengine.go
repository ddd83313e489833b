// 随机数引擎，包装了golang.org/x/exp/rand，提供仿真中车辆到达与通行所需的随机数
package randengine

import (
	"flag"
	"log"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：为单个episode提供可复现的随机数序列
// 说明：不是线程安全的，每个仿真环境持有自己的引擎
type Engine struct {
	*rand.Rand
}

// New 创建随机数引擎
// 功能：以seed+种子偏移量初始化随机数引擎
// 参数：seed-随机数种子
// 返回：随机数引擎指针
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Exponential 按给定速率生成指数分布随机数
// 功能：生成泊松到达过程的车头时距
// 参数：rate-到达率，必须为正
// 返回：均值为1/rate的随机时长
func (e *Engine) Exponential(rate float64) float64 {
	if rate <= 0 {
		log.Panicf("randengine: Exponential: rate %f must be positive", rate)
	}
	return e.ExpFloat64() / rate
}

// Uniform 生成[low, high)区间内的均匀分布随机数
func (e *Engine) Uniform(low, high float64) float64 {
	return low + (high-low)*e.Float64()
}

// DiscreteDistribution 按给定概率分布生成随机数
// 功能：根据权重数组生成离散分布的随机数
// 参数：weight-权重数组，每个元素表示对应索引的概率权重
// 返回：随机生成的索引值（0到len(weight)-1）
// 算法说明：
// 1. 计算总权重
// 2. 在[0, 总权重)范围内生成随机数
// 3. 累积权重直到超过随机数，返回对应索引
func (e *Engine) DiscreteDistribution(weight []float64) int32 {
	random := .0
	for _, w := range weight {
		random += w
	}
	random *= e.Float64()
	sum := 0.
	for i, w := range weight {
		sum += w
		if sum > random {
			return int32(i)
		}
	}
	log.Panicf("randengine: DiscreteDistribution: sum: %f random: %f", sum, random)
	return -1
}

// PTrue 以指定概率返回true
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

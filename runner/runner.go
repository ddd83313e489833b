package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/junction/trafficlight"
)

var (
	ErrTruncated = errors.New("episode truncated before completion")
)

// task/task.go的依赖倒置
type IEnvironment interface {
	Reset(render bool) entity.Observation
	Step(action bool) (obs entity.Observation, reward float64, done bool, truncated bool)
	State() entity.State
	CollisionDetected() bool
	CurrentAverageWaitTime() float64
}

// EpisodeResult 单个episode的结果
type EpisodeResult struct {
	Index           int     // 从1开始的episode序号
	Steps           int     // 步数
	Score           float64 // 累计奖励
	Collisions      int     // 检测到碰撞的步数
	AverageWaitTime float64 // 无碰撞时的平均等待时间
}

// Collided 是否发生碰撞
func (e EpisodeResult) Collided() bool {
	return e.Collisions > 0
}

// Result 一次多episode运行的汇总
type Result struct {
	ID                uuid.UUID
	Method            string
	Episodes          int
	Completed         int     // 无碰撞的episode数
	AverageWaitTime   float64 // 无碰撞episode的平均等待时间
	AverageCollisions float64 // 发生碰撞的episode占比

	EpisodeResults []EpisodeResult
}

// Run 运行多个episode并汇总
// 功能：每个episode重置策略与环境，逐步调用策略直到环境报告结束
// 参数：ctx-取消信号，env-仿真环境，policy-信控策略，episodes-episode数，render-是否渲染
// 返回：汇总结果；任一episode被截断时返回包装了ErrTruncated的错误且没有结果
// 算法说明：
// 1. 策略的决策输入为当前快照与上一步（首步为Reset）返回的观测
// 2. 累加奖励与每步的碰撞标志
// 3. 无碰撞的episode记录环境当前的平均等待时间
// 4. 平均等待时间按无碰撞episode数平均，碰撞率按全部episode数平均
func Run(
	ctx context.Context,
	env IEnvironment,
	policy trafficlight.IPolicy,
	episodes int,
	render bool,
) (*Result, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", episodes)
	}
	r := &Result{
		ID:             uuid.New(),
		Method:         policy.Name(),
		Episodes:       episodes,
		EpisodeResults: make([]EpisodeResult, 0, episodes),
	}
	runLog := log.WithFields(logrus.Fields{"run": r.ID.String(), "method": r.Method})
	runLog.Infof("-- Running %s for %d episodes --", r.Method, episodes)

	totalWaitTime := 0.
	for k := 1; k <= episodes; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		policy.Reset()
		obs := env.Reset(render)
		e := EpisodeResult{Index: k}
		for done := false; !done; {
			action := policy.Decide(env.State(), &obs)
			var reward float64
			var truncated bool
			obs, reward, done, truncated = env.Step(action)
			if truncated {
				return nil, fmt.Errorf("%s episode %d after %d steps: %w", r.Method, k, e.Steps+1, ErrTruncated)
			}
			e.Steps++
			e.Score += reward
			if env.CollisionDetected() {
				e.Collisions++
			}
		}
		if e.Collided() {
			runLog.Infof("Episode %d - Collisions: %d", k, e.Collisions)
		} else {
			e.AverageWaitTime = env.CurrentAverageWaitTime()
			totalWaitTime += e.AverageWaitTime
			r.Completed++
			runLog.Infof("Episode %d - Wait time: %.2f", k, e.AverageWaitTime)
		}
		r.EpisodeResults = append(r.EpisodeResults, e)
	}

	if r.Completed > 0 {
		r.AverageWaitTime = totalWaitTime / float64(r.Completed)
	} else {
		runLog.Warnf("all %d episodes collided, average wait time reported as 0", episodes)
	}
	r.AverageCollisions = float64(episodes-r.Completed) / float64(episodes)
	return r, nil
}

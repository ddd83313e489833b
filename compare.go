package main

import (
	"github.com/spf13/cobra"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/runner"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/task"
	"golang.org/x/sync/errgroup"
)

// newCompareCmd 创建compare子命令
// 功能：在相同种子的环境上并发运行多个策略，输出一张汇总表
// 说明：每个策略拥有独立的环境，任一策略出错（如episode被截断）时取消其余策略
func newCompareCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run several policies on identically seeded environments and print one table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := o.loadConfig()
			if err != nil {
				return err
			}
			policies := make([]trafficlight.IPolicy, len(o.methods))
			for i, m := range o.methods {
				if policies[i], err = trafficlight.NewPolicy(m, c.Policy); err != nil {
					return err
				}
			}
			results := make([]*runner.Result, len(policies))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, policy := range policies {
				i, policy := i, policy
				g.Go(func() error {
					r, err := runner.Run(ctx, task.NewContext(c), policy, o.episodes, false)
					results[i] = r
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return runner.WriteTable(cmd.OutOrStdout(), results...)
		},
	}
	cmd.Flags().StringSliceVar(&o.methods, "methods", trafficlight.Methods(), "policies to compare")
	return cmd
}

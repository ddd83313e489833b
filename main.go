package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/runner"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/task"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/config"
)

var (
	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "tlc")
)

// options 命令行参数
type options struct {
	configPath string // 配置文件路径，为空时使用默认配置
	method     string // 信控策略名
	episodes   int    // episode数
	render     bool   // 是否渲染
	methods    []string
}

// setupLog 设置日志格式与级别
func setupLog() error {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	level, ok := logLevels[*logLevel]
	if !ok {
		return fmt.Errorf("log.level must be one of %v, got %q", logLevels, *logLevel)
	}
	logrus.SetLevel(level)
	return nil
}

// loadConfig 读取配置并检查episode数
func (o *options) loadConfig() (config.Config, error) {
	if o.episodes <= 0 {
		return config.Config{}, fmt.Errorf("episodes must be a positive integer, got %d", o.episodes)
	}
	c, err := config.Load(o.configPath)
	if err != nil {
		return c, err
	}
	log.Debugf("%+v", c)
	return c, nil
}

// newRootCmd 创建根命令
// 功能：tlc -m {fc|lqf|plqf|mp} -e N [-r]，运行单个策略并输出汇总
// 说明：各包注册的go flag（log.level、rand.seed_offset、log.heartbeat_interval）一并接入
func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "tlc",
		Short:         "Evaluate traffic signal switching policies on a simulated two-phase junction",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setupLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := o.loadConfig()
			if err != nil {
				return err
			}
			policy, err := trafficlight.NewPolicy(o.method, c.Policy)
			if err != nil {
				return err
			}
			r, err := runner.Run(cmd.Context(), task.NewContext(c), policy, o.episodes, o.render)
			if err != nil {
				return err
			}
			return runner.WriteSummary(cmd.OutOrStdout(), r)
		},
	}
	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "config file path (empty means built-in defaults)")
	cmd.PersistentFlags().IntVarP(&o.episodes, "episodes", "e", 1, "number of episodes")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmd.Flags().StringVarP(&o.method, "method", "m", trafficlight.FIXED_CYCLE, fmt.Sprintf("policy, one of %v", trafficlight.Methods()))
	cmd.Flags().BoolVarP(&o.render, "render", "r", false, "render every step")
	cmd.AddCommand(newCompareCmd(o))
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

// Package cli 实现 orgchart 命令行：演示、报表、导入导出、HTTP 服务和密码哈希。
package cli

import (
	"context"
	"fmt"

	"orgchart/internal/app"
	"orgchart/internal/config"
	"orgchart/pkg/log"

	"github.com/spf13/cobra"
)

// RootOptions 是所有子命令共享的全局参数。
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand 创建 orgchart 根命令。
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "orgchart",
		Short: "Organization hierarchy: budgets, headcount and lookups",
		Long: `orgchart models a company as a tree of departments, employees and contractors.

Budgets and headcounts are computed on demand from the tree, so every salary
change is visible to the next query.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "configs/config.yaml", "path to the YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at the configured level instead of warn")

	cmd.AddCommand(NewDemoCommand())
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewHashPasswordCommand())

	return cmd
}

// loadConfig 读取配置并初始化日志。非 serve 命令默认只输出 warn 以上的日志，避免淹没命令输出。
func loadConfig(opts *RootOptions, quiet bool) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if quiet && !opts.Verbose {
		level = "warn"
	}
	log.Init(level, cfg.Log.Format, cfg.Log.OutputPath)
	return cfg, nil
}

func openApp(ctx context.Context, opts *RootOptions) (*app.App, error) {
	cfg, err := loadConfig(opts, true)
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return a, nil
}

// Package main 是八字排盘程序的入口：单次排盘（analyze）、批量排盘（batch）、查看内置地名（places）。
// 配置见 internal/config，BAZI_* 环境变量优先于 config.yaml。
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baziEngine/internal/bazi"
	"baziEngine/internal/calendar"
	"baziEngine/internal/config"
	"baziEngine/internal/geo"
	"baziEngine/internal/trace"
)

var (
	cfg      *config.Config
	syncLogs = func() {}
)

var rootCmd = &cobra.Command{
	Use:           "bazi",
	Short:         "四柱八字排盘",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if logMode != "" {
			cfg.LogMode = logMode
		}
		flush, err := trace.Init(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		syncLogs = flush
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) { syncLogs() },
}

var logMode string

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log", "", "日志模式 dev|prod|off（默认取 BAZI_LOG_MODE）")
	rootCmd.AddCommand(analyzeCmd, batchCmd, placesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// conf 命令未经 rootCmd 启动（如测试直接调用）时补加载一次。
func conf() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

// gazetteer 配置了路径就读文件，否则用内置地名库。
func gazetteer() (*geo.Gazetteer, error) {
	if p := conf().GazetteerPath; p != "" {
		return geo.Load(p)
	}
	return geo.Default(), nil
}

func newAnalyzer() (*bazi.Analyzer, error) {
	gaz, err := gazetteer()
	if err != nil {
		return nil, err
	}
	return bazi.New(calendar.NewLunar(), bazi.WithLocator(gaz), bazi.WithFortunePeriods(conf().FortunePeriods)), nil
}

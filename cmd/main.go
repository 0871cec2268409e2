package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ad_generator_v1/internal/config"
	"ad_generator_v1/internal/logger"
)

// cfgFile --config 指定的配置文件
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "adgen",
	Short: "Persona-targeted ad generation orchestrator",
	Long: `adgen 根据一句广告需求和投放国家/语言，调用画像、图片、文案三个生成服务，
为每个画像组装一条带图片、文案和质量分的广告。

子命令:
  serve    - 启动 HTTP 服务
  generate - 生成一次广告并输出 JSON
  health   - 探测三个依赖服务`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("ADGEN_CONFIG"), "配置文件路径 (YAML)")

	rootCmd.AddCommand(serveCmd, generateCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap 加载配置并创建 logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, log, nil
}

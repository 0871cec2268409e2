package main

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ad_generator_v1/internal/model"
)

var genReq model.GenerationRequest

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "生成一次广告并把结果 JSON 输出到标准输出",
	Example: `  adgen generate --prompt "fitness app for busy parents" --country US --language en --count 2`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genReq.Prompt, "prompt", "", "广告需求 (必填)")
	f.StringVar(&genReq.Country, "country", "", "投放国家 (必填)")
	f.StringVar(&genReq.Language, "language", "", "投放语言 (必填)")
	f.IntVar(&genReq.Count, "count", 0, "广告数量，0 表示使用默认值")
	f.StringVar(&genReq.ImageStyle, "image-style", "", "图片风格")
	f.StringVar(&genReq.ImageQuality, "image-quality", "", "图片质量")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(genReq.Prompt) == "" || genReq.Country == "" || genReq.Language == "" {
		return errors.New("缺少必填参数: --prompt, --country, --language")
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	deps, err := initDependencies(cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	res := deps.Services.Ads.GenerateAds(cmd.Context(), genReq)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}

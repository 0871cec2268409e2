package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "探测画像、图片、文案三个依赖服务，任一不可用时退出码为 1",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	deps, err := initDependencies(cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	report := deps.Services.Health.Check(cmd.Context())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if !report.Success {
		return fmt.Errorf("依赖不可用: %s", strings.Join(report.Failing(), ", "))
	}
	return nil
}

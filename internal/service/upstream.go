package service

import (
	"fmt"

	"github.com/go-resty/resty/v2"

	"ad_generator_v1/pkg/net"
)

// ==================== 上游接口路径 ====================

const (
	personaBatchPath  = "/personas/generate"
	personaSinglePath = "/personas/generate-single"
	personaInfoPath   = "/info"

	imageGeneratePath = "/images/generate"
	imageHealthPath   = "/health"

	textGeneratePath = "/generate"
	textHealthPath   = "/health"
)

// checkStatus 非 2xx 统一包装成 ErrUpstreamStatus
func checkStatus(resp *resty.Response) error {
	if err := net.CheckResponse(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamStatus, err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"ad_generator_v1/internal/model"
)

// ImageClient 图片服务 HTTP 客户端
type ImageClient struct {
	client   *resty.Client
	recorder CallRecorder
}

var _ ImageGenerator = (*ImageClient)(nil)

func NewImageClient(client *resty.Client, recorder CallRecorder) *ImageClient {
	if recorder == nil {
		recorder = NopCallRecorder{}
	}
	return &ImageClient{client: client, recorder: recorder}
}

// GenerateImage 调用图片生成，返回原始响应体
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string, opts model.ImageOptions) (raw json.RawMessage, err error) {
	start := time.Now()
	defer func() {
		recordCall(ctx, c.recorder, model.CallServiceImage, "generate_image", start, 0, err)
	}()

	body := map[string]interface{}{
		"prompt": prompt,
		"count":  opts.Count,
	}
	if opts.Size != "" {
		body["size"] = opts.Size
	}
	if opts.Style != "" {
		body["style"] = opts.Style
	}
	if opts.Quality != "" {
		body["quality"] = opts.Quality
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(imageGeneratePath)
	if err != nil {
		return nil, fmt.Errorf("图片生成请求失败: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body()), nil
}

// HealthCheck 专用探活接口，不产生生成费用
func (c *ImageClient) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get(imageHealthPath)
	if err != nil {
		return fmt.Errorf("图片服务探活失败: %w", err)
	}
	return checkStatus(resp)
}

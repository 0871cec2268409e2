package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"ad_generator_v1/internal/model"
)

// TextClient 文案服务 HTTP 客户端
type TextClient struct {
	client   *resty.Client
	recorder CallRecorder
}

var _ TextGenerator = (*TextClient)(nil)

func NewTextClient(client *resty.Client, recorder CallRecorder) *TextClient {
	if recorder == nil {
		recorder = NopCallRecorder{}
	}
	return &TextClient{client: client, recorder: recorder}
}

// Generate 调用文案生成，返回原始响应体
func (c *TextClient) Generate(ctx context.Context, req model.TextRequest) (raw json.RawMessage, err error) {
	start := time.Now()
	defer func() {
		recordCall(ctx, c.recorder, model.CallServiceText, "generate", start, 0, err)
	}()

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(textGeneratePath)
	if err != nil {
		return nil, fmt.Errorf("文案生成请求失败: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body()), nil
}

// Health 文案服务探活，返回上游报告的 success
func (c *TextClient) Health(ctx context.Context) (bool, error) {
	resp, err := c.client.R().SetContext(ctx).Get(textHealthPath)
	if err != nil {
		return false, fmt.Errorf("文案服务探活失败: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return false, err
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return false, fmt.Errorf("%w: 解析文案服务探活响应失败: %v", ErrUnrecognizedShape, err)
	}
	return out.Success, nil
}

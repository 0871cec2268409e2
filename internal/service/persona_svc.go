package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"ad_generator_v1/internal/model"
)

// PersonaClient 画像服务 HTTP 客户端
type PersonaClient struct {
	client   *resty.Client
	recorder CallRecorder
}

var _ PersonaGenerator = (*PersonaClient)(nil)

func NewPersonaClient(client *resty.Client, recorder CallRecorder) *PersonaClient {
	if recorder == nil {
		recorder = NopCallRecorder{}
	}
	return &PersonaClient{client: client, recorder: recorder}
}

// GenerateMultiple 批量生成画像
func (c *PersonaClient) GenerateMultiple(ctx context.Context, count int, opts model.PersonaOptions) (batch *model.PersonaBatch, err error) {
	start := time.Now()
	defer func() {
		items := 0
		if batch != nil {
			items = len(batch.Personas)
		}
		recordCall(ctx, c.recorder, model.CallServicePersona, "generate_multiple", start, items, err)
	}()

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"count":    count,
			"weighted": opts.Weighted,
			"seed":     opts.Seed,
		}).
		Post(personaBatchPath)
	if err != nil {
		return nil, fmt.Errorf("批量生成画像请求失败: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out model.PersonaBatch
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w: 解析画像批量响应失败: %v", ErrUnrecognizedShape, err)
	}
	return &out, nil
}

// GenerateSingle 生成单个画像
func (c *PersonaClient) GenerateSingle(ctx context.Context, opts model.PersonaOptions) (persona *model.Persona, err error) {
	start := time.Now()
	defer func() {
		items := 0
		if persona != nil {
			items = 1
		}
		recordCall(ctx, c.recorder, model.CallServicePersona, "generate_single", start, items, err)
	}()

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(opts).
		Post(personaSinglePath)
	if err != nil {
		return nil, fmt.Errorf("生成单个画像请求失败: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return decodeSinglePersona(resp.Body())
}

// GetInfo 获取画像服务信息，只用于探活
func (c *PersonaClient) GetInfo(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.client.R().SetContext(ctx).Get(personaInfoPath)
	if err != nil {
		return nil, fmt.Errorf("获取画像服务信息失败: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body()), nil
}

// decodeSinglePersona 兼容 裸记录 与 {persona: 记录} 两种返回
func decodeSinglePersona(body []byte) (*model.Persona, error) {
	var p model.Persona
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: 解析画像失败: %v", ErrUnrecognizedShape, err)
	}
	if !p.ID.IsZero() {
		return &p, nil
	}

	var wrapped struct {
		Persona json.RawMessage `json:"persona"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Persona) > 0 {
		var inner model.Persona
		if err := json.Unmarshal(wrapped.Persona, &inner); err == nil && !inner.ID.IsZero() {
			return &inner, nil
		}
	}

	return nil, fmt.Errorf("%w: 画像缺少 id", ErrUnrecognizedShape)
}

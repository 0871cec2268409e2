package net

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent 所有上游请求统一的 UA
const UserAgent = "Ad-Generator-Go/1.0"

// ClientOptions 上游客户端参数
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// NewServiceClient 创建一个配置好基础地址、超时和标准头的 Resty 客户端
// 它是访问三个生成服务的统一网络入口
// 生成类接口不是幂等的，这里不开启重试
func NewServiceClient(opts ClientOptions) *resty.Client {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetDebug(opts.Debug).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return client
}

// StatusError 上游返回非 2xx
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s 返回 [%d]: %s", e.Method, e.URL, e.Code, e.Body)
}

// CheckResponse 把非 2xx 响应转成 *StatusError，响应体截断到 512 字节
func CheckResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	body := resp.String()
	if len(body) > 512 {
		body = body[:512] + "..."
	}

	return &StatusError{
		Method: resp.Request.Method,
		URL:    resp.Request.URL,
		Code:   resp.StatusCode(),
		Body:   body,
	}
}

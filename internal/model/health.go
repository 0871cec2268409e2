package model

import "time"

// 依赖服务名称
const (
	ServicePersona = "personaGenerator"
	ServiceImage   = "imageGenerator"
	ServiceText    = "textGenerator"
)

// HealthData 健康检查明细
type HealthData struct {
	Services  map[string]bool `json:"services"`
	Timestamp time.Time       `json:"timestamp"`
	Worker    string          `json:"worker"`
}

// HealthReport 三个依赖的聚合健康状态
// Success 为所有依赖状态的逻辑与
type HealthReport struct {
	Success bool       `json:"success"`
	Data    HealthData `json:"data"`
}

// Failing 返回状态为 false 的服务名
func (r *HealthReport) Failing() []string {
	var failed []string
	for _, name := range []string{ServicePersona, ServiceImage, ServiceText} {
		if ok, exists := r.Data.Services[name]; exists && !ok {
			failed = append(failed, name)
		}
	}
	return failed
}

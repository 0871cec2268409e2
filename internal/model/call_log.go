package model

// UpstreamCallLog 上游依赖调用日志
// 只记录调用的耗时与结果，不保存生成内容
type UpstreamCallLog struct {
	BaseModel

	// 关联
	RequestID string `gorm:"size:64;index;comment:编排请求ID" json:"request_id"`

	// 调用信息
	Service   string `gorm:"size:32;index;comment:依赖服务(persona/image/text)" json:"service"`
	Operation string `gorm:"size:64;comment:操作名称" json:"operation"`

	// 用量与性能
	ItemCount  int   `gorm:"default:0;comment:返回条目数" json:"item_count"`
	DurationMs int64 `gorm:"comment:耗时(毫秒)" json:"duration_ms"`

	// 状态
	Status   string `gorm:"size:32;index;default:success;comment:状态(success/failed)" json:"status"`
	ErrorMsg string `gorm:"size:1024;comment:错误信息" json:"error_msg,omitempty"`
}

func (UpstreamCallLog) TableName() string {
	return "upstream_call_logs"
}

// ==================== 调用服务常量 ====================

const (
	CallServicePersona = "persona"
	CallServiceImage   = "image"
	CallServiceText    = "text"
)

// ==================== 状态常量 ====================

const (
	CallStatusSuccess = "success"
	CallStatusFailed  = "failed"
)

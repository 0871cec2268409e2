package model

import "time"

// BaseModel 公共字段
// 调用日志只追加不修改，因此不带软删除
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

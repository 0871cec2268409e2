package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRequestID 生成 ad-<毫秒时间戳>-<12 位随机十六进制>
func NewRequestID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("ad-%d-%s", time.Now().UnixMilli(), suffix)
}

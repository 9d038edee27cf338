package utils

import "github.com/google/uuid"

// NewID 生成时间有序的 UUIDv7，按 id 排序即按插入顺序
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

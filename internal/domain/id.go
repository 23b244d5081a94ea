package domain

import "github.com/google/uuid"

// NewID 生成实体主键（随机 UUID v4，创建后不可变）
func NewID() string {
	return uuid.NewString()
}

// EnsureID assigns a fresh id when *id is empty and returns it.
func EnsureID(id *string) string {
	if *id == "" {
		*id = NewID()
	}
	return *id
}

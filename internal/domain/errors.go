package domain

import "errors"

var (
	// ErrNotFound 记录不存在（主资源或外键目标）
	ErrNotFound = errors.New("not found")
	// ErrDuplicate 违反唯一约束
	ErrDuplicate = errors.New("duplicate")
)

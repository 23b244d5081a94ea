package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FlashKind 一次性提示类型
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notice shown on the next page a session loads.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

const flashKeyPrefix = "homecare:flash:"

// FlashStore keeps at most one pending notice per session.
type FlashStore struct {
	kv  KV
	ttl time.Duration
}

func NewFlashStore(kv KV, ttl time.Duration) *FlashStore {
	return &FlashStore{kv: kv, ttl: ttl}
}

func (s *FlashStore) Put(ctx context.Context, session string, f Flash) error {
	if session == "" {
		return nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode flash: %w", err)
	}
	if err := s.kv.Set(ctx, flashKeyPrefix+session, string(b), s.ttl); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}
	return nil
}

// Pop returns and clears the pending notice; nil when there is none.
func (s *FlashStore) Pop(ctx context.Context, session string) (*Flash, error) {
	if session == "" {
		return nil, nil
	}
	raw, err := s.kv.Take(ctx, flashKeyPrefix+session)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read flash: %w", err)
	}
	var f Flash
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return nil, fmt.Errorf("failed to decode flash: %w", err)
	}
	return &f, nil
}

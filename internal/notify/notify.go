// Package notify delivers transient toast messages to a provider's page.
// Delivery is best effort: a toast that cannot be queued is logged and dropped.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"specialties/internal/cache"
)

// Level is the toast severity.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is one message shown to the user.
type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Sink queues toasts per user until the page drains them.
type Sink interface {
	Push(ctx context.Context, userID uuid.UUID, toast Toast) error
	Drain(ctx context.Context, userID uuid.UUID) ([]Toast, error)
}

const toastKeyPrefix = "toasts:"

// RedisSink keeps each user's toasts in a Redis list that expires after ttl.
type RedisSink struct {
	cache *cache.Client
	ttl   time.Duration
}

var _ Sink = (*RedisSink)(nil)

// NewRedisSink creates a Redis backed sink.
func NewRedisSink(cache *cache.Client, ttl time.Duration) *RedisSink {
	return &RedisSink{cache: cache, ttl: ttl}
}

func (s *RedisSink) Push(ctx context.Context, userID uuid.UUID, toast Toast) error {
	payload, err := json.Marshal(toast)
	if err != nil {
		return fmt.Errorf("marshal toast: %w", err)
	}
	return s.cache.Push(ctx, toastKeyPrefix+userID.String(), payload, s.ttl)
}

func (s *RedisSink) Drain(ctx context.Context, userID uuid.UUID) ([]Toast, error) {
	items, err := s.cache.Drain(ctx, toastKeyPrefix+userID.String())
	if err != nil {
		return nil, fmt.Errorf("drain toasts: %w", err)
	}
	toasts := make([]Toast, 0, len(items))
	for _, item := range items {
		var t Toast
		if err := json.Unmarshal(item, &t); err != nil {
			continue
		}
		toasts = append(toasts, t)
	}
	return toasts, nil
}

// Memory is an in-process sink, used when Redis is unavailable and in tests.
type Memory struct {
	mu     sync.Mutex
	queues map[uuid.UUID][]Toast
}

var _ Sink = (*Memory)(nil)

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{queues: make(map[uuid.UUID][]Toast)}
}

func (m *Memory) Push(_ context.Context, userID uuid.UUID, toast Toast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[userID] = append(m.queues[userID], toast)
	return nil
}

func (m *Memory) Drain(_ context.Context, userID uuid.UUID) ([]Toast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	toasts := m.queues[userID]
	delete(m.queues, userID)
	return toasts, nil
}

// Notifier sends toasts to a single user.
type Notifier struct {
	sink   Sink
	userID uuid.UUID
	log    zerolog.Logger
}

// For binds sink to one user.
func For(sink Sink, userID uuid.UUID, log zerolog.Logger) *Notifier {
	return &Notifier{sink: sink, userID: userID, log: log}
}

// Success queues a success toast.
func (n *Notifier) Success(ctx context.Context, msg string) {
	n.push(ctx, Toast{Level: LevelSuccess, Message: msg})
}

// Error queues an error toast.
func (n *Notifier) Error(ctx context.Context, msg string) {
	n.push(ctx, Toast{Level: LevelError, Message: msg})
}

func (n *Notifier) push(ctx context.Context, t Toast) {
	if err := n.sink.Push(ctx, n.userID, t); err != nil {
		n.log.Warn().Err(err).
			Str("user_id", n.userID.String()).
			Str("toast", t.Message).
			Msg("toast dropped")
	}
}

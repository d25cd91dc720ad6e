package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery - число вызовов Allow между очистками истекших окон.
const sweepEvery = 1024

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryLimiter хранит окна в памяти процесса.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	calls   int
	now     func() time.Time
}

// MemoryOption настраивает MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter создает лимитер в памяти.
func NewMemoryLimiter(opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ Limiter = (*MemoryLimiter)(nil)

// Allow учитывает запрос.
func (l *MemoryLimiter) Allow(_ context.Context, key string, rule Rule) (Decision, error) {
	now := l.now()
	k := windowKey(rule, key)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweep(now)
	}

	w, ok := l.windows[k]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rule.Window)}
		l.windows[k] = w
	}
	w.count++

	return decide(rule, w.count, w.resetAt.Sub(now)), nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}

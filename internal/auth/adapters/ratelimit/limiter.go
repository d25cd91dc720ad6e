// Package ratelimit реализует ограничение частоты запросов фиксированным окном
// в Redis или в памяти процесса.
package ratelimit

import (
	"context"
	"time"
)

// Rule - ограничение: не более Limit запросов за Window для одного ключа.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Decision - результат учета очередного запроса.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter учитывает запрос с ключом key по правилу rule.
type Limiter interface {
	Allow(ctx context.Context, key string, rule Rule) (Decision, error)
}

func decide(rule Rule, count int64, resetAfter time.Duration) Decision {
	remaining := int64(rule.Limit) - count
	if remaining < 0 {
		remaining = 0
	}
	if resetAfter < 0 {
		resetAfter = 0
	}
	return Decision{
		Allowed:    count <= int64(rule.Limit),
		Limit:      rule.Limit,
		Remaining:  int(remaining),
		ResetAfter: resetAfter,
	}
}

// open - решение при недоступном хранилище счетчиков: запрос пропускается.
func open(rule Rule) Decision {
	return Decision{Allowed: true, Limit: rule.Limit, Remaining: rule.Limit, ResetAfter: rule.Window}
}

func windowKey(rule Rule, key string) string {
	return "rl:" + rule.Name + ":" + key
}

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const errCtxRedisWindow = "counting request in redis window"

// ErrUnexpectedReply возвращается, если скрипт вернул ответ неожиданной формы.
var ErrUnexpectedReply = errors.New("unexpected rate limit script reply")

// windowScript атомарно увеличивает счетчик окна и возвращает {count, pttl}.
var windowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisLimiter хранит окна в Redis, поэтому лимиты общие для всех экземпляров сервиса.
type RedisLimiter struct {
	rdb redis.Scripter
}

// NewRedisLimiter создает лимитер поверх клиента Redis.
func NewRedisLimiter(rdb redis.Scripter) *RedisLimiter {
	return &RedisLimiter{rdb: rdb}
}

var _ Limiter = (*RedisLimiter)(nil)

// Allow учитывает запрос. При ошибке Redis возвращается разрешающее решение вместе с ошибкой.
func (l *RedisLimiter) Allow(ctx context.Context, key string, rule Rule) (Decision, error) {
	res, err := windowScript.Run(ctx, l.rdb, []string{windowKey(rule, key)}, rule.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return open(rule), fmt.Errorf("%s: %w", errCtxRedisWindow, err)
	}
	if len(res) != 2 {
		return open(rule), fmt.Errorf("%s: %w", errCtxRedisWindow, ErrUnexpectedReply)
	}

	return decide(rule, res[0], time.Duration(res[1])*time.Millisecond), nil
}

package circuitbreaker

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisBreaker struct {
	// Redis client holding the shared circuit state.
	rdb *redis.Client
	// Breaker name, part of every key.
	name string
	opts Options
	// Records a failure and opens the breaker atomically.
	failScript *redis.Script
	logger     *slog.Logger
}

// KEYS: fails, open, half, tripped
// ARGV: failWindowMs, threshold, openCooldownMs
var failLua = `
local failsKey   = KEYS[1]
local openKey    = KEYS[2]
local halfKey    = KEYS[3]
local trippedKey = KEYS[4]

local failWindowMs   = tonumber(ARGV[1])
local threshold      = tonumber(ARGV[2])
local openCooldownMs = tonumber(ARGV[3])

local fails = redis.call("INCR", failsKey)

local ttl = redis.call("PTTL", failsKey)
if ttl < 0 then
	redis.call("PEXPIRE", failsKey, failWindowMs)
end

-- a failed probe reopens straight away
if fails >= threshold or redis.call("EXISTS", trippedKey) == 1 then
	redis.call("SET", openKey, "1", "PX", openCooldownMs)
	redis.call("SET", trippedKey, "1", "PX", openCooldownMs * 2)
	redis.call("DEL", failsKey)
	redis.call("DEL", halfKey)
	return {fails, "opened"}
end

redis.call("DEL", halfKey)
return {fails, "closed"}
`

func NewRedisBreaker(rdb *redis.Client, name string, opts Options, logger *slog.Logger) *RedisBreaker {
	if opts.FailureThreshold <= 0 {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisBreaker{
		rdb:        rdb,
		name:       name,
		opts:       opts,
		failScript: redis.NewScript(failLua),
		logger: logger.With(
			slog.String("component", "circuitbreaker"),
			slog.String("breaker", name),
		),
	}
}

func (b *RedisBreaker) keys() (openKey, failsKey, halfKey, trippedKey string) {
	prefix := b.opts.Prefix + b.name + ":"
	return prefix + "open", prefix + "fails", prefix + "half", prefix + "tripped"
}

// Allow returns nil if the call may proceed, or ErrCircuitOpen if it must be
// blocked. After the cool down only one caller at a time gets through as a
// probe until it reports back.
func (b *RedisBreaker) Allow(ctx context.Context) error {
	openKey, _, halfKey, trippedKey := b.keys()

	n, err := b.rdb.Exists(ctx, openKey, trippedKey).Result()
	if err != nil {
		return b.blind(err)
	}
	if n == 0 {
		return nil
	}

	open, err := b.rdb.Exists(ctx, openKey).Result()
	if err != nil {
		return b.blind(err)
	}
	if open == 1 {
		return ErrCircuitOpen
	}

	acquired, err := b.rdb.SetNX(ctx, halfKey, "1", b.opts.HalfOpenLease).Result()
	if err != nil {
		return b.blind(err)
	}
	if !acquired {
		return ErrCircuitOpen
	}

	b.logger.Info("circuit half-open, probing")
	return nil
}

func (b *RedisBreaker) blind(err error) error {
	b.logger.Warn("circuit state unavailable",
		slog.Any("error", err),
		slog.Bool("fail_open", b.opts.FailOpen),
	)
	if b.opts.FailOpen {
		return nil
	}
	return ErrCircuitOpen
}

func (b *RedisBreaker) OnSuccess(ctx context.Context) {
	_, failsKey, halfKey, trippedKey := b.keys()

	err := b.rdb.Del(ctx, failsKey, halfKey, trippedKey).Err()
	if err != nil {
		b.logger.Warn("circuit reset failed", slog.Any("error", err))
	}
}

func (b *RedisBreaker) OnFailure(ctx context.Context) {
	openKey, failsKey, halfKey, trippedKey := b.keys()

	res, err := b.failScript.Run(ctx, b.rdb,
		[]string{failsKey, openKey, halfKey, trippedKey},
		b.opts.FailWindow.Milliseconds(),
		b.opts.FailureThreshold,
		b.opts.OpenCoolDown.Milliseconds(),
	).Slice()
	if err != nil {
		b.logger.Warn("circuit failure not recorded", slog.Any("error", err))
		return
	}

	if len(res) == 2 && res[1] == "opened" {
		b.logger.Warn("circuit opened",
			slog.Any("fails", res[0]),
			slog.Duration("cool_down", b.opts.OpenCoolDown),
		)
	}
}

// State reports the breaker state for status checks.
func (b *RedisBreaker) State(ctx context.Context) string {
	openKey, _, halfKey, trippedKey := b.keys()

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	pipe := b.rdb.Pipeline()
	open := pipe.Exists(ctx, openKey)
	tripped := pipe.Exists(ctx, trippedKey)
	half := pipe.Exists(ctx, halfKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return StateUnknown
	}

	switch {
	case open.Val() == 1:
		return StateOpen
	case tripped.Val() == 1 || half.Val() == 1:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

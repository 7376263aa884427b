package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// 黑名单键前缀，值本身无意义，只依赖键的存在与过期时间。
const tokenBlacklistPrefix = "token_blacklist:"

// TokenBlacklist 记录已主动注销但尚未过期的令牌。
type TokenBlacklist interface {
	// Add 返回 false 表示令牌早已在黑名单中，可用来保证同一令牌只被消费一次。
	Add(ctx context.Context, token string, ttl time.Duration) (bool, error)
	Contains(ctx context.Context, token string) (bool, error)
}

type redisTokenBlacklist struct {
	rdb *redis.Client
}

func NewRedisTokenBlacklist(rdb *redis.Client) TokenBlacklist {
	return &redisTokenBlacklist{rdb: rdb}
}

// Add 用 SETNX 写入黑名单，过期时间与令牌剩余有效期一致；已过期的令牌无需记录。
func (b *redisTokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return true, nil
	}
	return b.rdb.SetNX(ctx, tokenBlacklistPrefix+token, "1", ttl).Result()
}

func (b *redisTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.rdb.Exists(ctx, tokenBlacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

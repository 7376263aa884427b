package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestBlacklist(t *testing.T) (*miniredis.Miniredis, TokenBlacklist) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisTokenBlacklist(rdb)
}

func TestTokenBlacklist_AddContains(t *testing.T) {
	mr, bl := newTestBlacklist(t)
	ctx := context.Background()

	ok, err := bl.Contains(ctx, "tok")
	if err != nil || ok {
		t.Fatalf("Contains() before Add = %v, %v", ok, err)
	}

	added, err := bl.Add(ctx, "tok", time.Minute)
	if err != nil || !added {
		t.Fatalf("Add() = %v, %v", added, err)
	}
	if !mr.Exists("token_blacklist:tok") {
		t.Fatalf("expected key token_blacklist:tok in redis")
	}
	ok, err = bl.Contains(ctx, "tok")
	if err != nil || !ok {
		t.Fatalf("Contains() after Add = %v, %v", ok, err)
	}

	mr.FastForward(2 * time.Minute)
	ok, err = bl.Contains(ctx, "tok")
	if err != nil || ok {
		t.Fatalf("Contains() after expiry = %v, %v", ok, err)
	}
}

func TestTokenBlacklist_AddExpiredTokenIsNoop(t *testing.T) {
	mr, bl := newTestBlacklist(t)

	if _, err := bl.Add(context.Background(), "old", 0); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if mr.Exists("token_blacklist:old") {
		t.Fatalf("expired token should not be stored")
	}
}

func TestTokenBlacklist_RedisDown(t *testing.T) {
	mr, bl := newTestBlacklist(t)
	mr.Close()

	if _, err := bl.Contains(context.Background(), "tok"); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
}

func TestTokenBlacklist_AddTwiceReportsExisting(t *testing.T) {
	mr, bl := newTestBlacklist(t)
	ctx := context.Background()

	if added, err := bl.Add(ctx, "tok", time.Minute); err != nil || !added {
		t.Fatalf("first Add() = %v, %v", added, err)
	}
	if added, err := bl.Add(ctx, "tok", time.Hour); err != nil || added {
		t.Fatalf("second Add() = %v, %v; want false", added, err)
	}
	// 第二次写入不能刷新过期时间
	if ttl := mr.TTL("token_blacklist:tok"); ttl != time.Minute {
		t.Fatalf("TTL = %v, want 1m", ttl)
	}
}

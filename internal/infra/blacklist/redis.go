package blacklist

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ログアウト済みトークンのjtiを期限付きで覚える。
// TTLはトークン自身のexpまでなので、掃除は不要
const keyPrefix = "blacklist:jti:"

type RedisBlacklist struct {
	rdb *redis.Client
}

func New(addr string) *RedisBlacklist {
	return &RedisBlacklist{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func NewWithClient(rdb *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

// Add はjtiをexpiresAtまでブラックリストに入れる
func (b *RedisBlacklist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		//期限切れトークンは入れる意味がない
		return nil
	}
	return b.rdb.Set(ctx, keyPrefix+jti, "1", ttl).Err()
}

// Contains はjtiがブラックリストにあるか
func (b *RedisBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	radix "github.com/mediocregopher/radix/v3"
)

// TokenCache 缓存 JWT 解析结果，省掉每次请求的签名校验。
// 缓存 key 按哈希环分片，多实例部署时同一 token 落在同一节点前缀下。
type TokenCache struct {
	redis radix.Client
	ring  *HashRing
	ttl   time.Duration
}

func NewTokenCache(redis radix.Client, ring *HashRing, ttl time.Duration) *TokenCache {
	if ring == nil {
		ring = NewHashRing(nil, 0)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &TokenCache{redis: redis, ring: ring, ttl: ttl}
}

func (c *TokenCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	digest := hex.EncodeToString(sum[:16])
	return fmt.Sprintf("goshop:token:%s:%s", c.ring.Owner(token), digest)
}

// Get 查询缓存的 claims，miss 和错误都返回 hit=false
func (c *TokenCache) Get(ctx context.Context, token string) (*Claims, bool, error) {
	if c.redis == nil {
		return nil, false, nil
	}
	var raw string
	if err := c.redis.Do(radix.Cmd(&raw, "GET", c.key(token))); err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}
	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		// 缓存内容损坏，删掉让调用方重新解析
		_ = c.redis.Do(radix.Cmd(nil, "DEL", c.key(token)))
		return nil, false, nil
	}
	return &claims, true, nil
}

// Set 写入解析结果，带 TTL
func (c *TokenCache) Set(ctx context.Context, token string, claims *Claims) error {
	if c.redis == nil || claims == nil {
		return nil
	}
	body, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	return c.redis.Do(radix.FlatCmd(nil, "SETEX", c.key(token), int64(c.ttl/time.Second), body))
}

// Invalidate 主动失效，登出时调用
func (c *TokenCache) Invalidate(ctx context.Context, token string) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Do(radix.Cmd(nil, "DEL", c.key(token)))
}

package faq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// 列表缓存的默认过期时间
	defaultCacheTTL = 30 * time.Second
	// 列表缓存的 key 前缀，统一失效时按此模式扫描
	cacheKeyPattern = "faq:list:*"
)

// ListCache 热点列表的 Redis 读缓存
// 只缓存 most-viewed / recent 这类列表读取，单条FAQ读取永远直达数据库，
// 浏览量自增后的立即重读不受缓存影响。
// 浏览行为本身不触发失效：排行列表最多落后一个 TTL 周期，
// 只有 FAQ 的创建/更新/启停/删除才清空缓存
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache 创建列表缓存
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// get 读取缓存，未命中或缓存不可用时返回 false
func (c *ListCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// set 写入缓存，失败静默忽略
func (c *ListCache) set(ctx context.Context, key string, val interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}

// invalidate 清空所有列表缓存，FAQ 写路径调用
func (c *ListCache) invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, cacheKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

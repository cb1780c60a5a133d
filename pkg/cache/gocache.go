package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GoCache 基于 patrickmn/go-cache 的本地缓存
type GoCache struct {
	c *gocache.Cache
}

func NewGoCache(cfg LocalConfig) *GoCache {
	if cfg.DefaultExpiration <= 0 {
		cfg.DefaultExpiration = 5 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 10 * time.Minute
	}
	return &GoCache{c: gocache.New(cfg.DefaultExpiration, cfg.CleanupInterval)}
}

func (g *GoCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return g.c.Get(key)
}

func (g *GoCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	g.c.Set(key, value, expiration)
	return nil
}

func (g *GoCache) Delete(ctx context.Context, key string) error {
	g.c.Delete(key)
	return nil
}

func (g *GoCache) Exists(ctx context.Context, key string) bool {
	_, ok := g.c.Get(key)
	return ok
}

func (g *GoCache) Clear(ctx context.Context) error {
	g.c.Flush()
	return nil
}

func (g *GoCache) Close() error { return nil }

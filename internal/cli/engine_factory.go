package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/adapters/file"
	"github.com/aretw0/figspec/internal/adapters/redis"
	"github.com/aretw0/figspec/internal/config"
	"github.com/aretw0/figspec/pkg/adapters/memory"
)

// OpenEngine builds an engine over the store the configuration names.
// shared marks long-running servers whose in-process writers must be
// serialized; the Redis store is always locked. The returned close function
// releases the store.
func OpenEngine(cfg *config.Config, logger *slog.Logger, shared bool) (*figspec.Engine, func() error, error) {
	opts := []figspec.Option{
		figspec.WithLogger(logger),
		figspec.WithMaxTextLen(cfg.MaxTextLen),
		figspec.WithIncludeInvisible(cfg.IncludeInvisible),
		figspec.WithAbsorb(cfg.Absorb),
	}
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreFile:
		store, key := file.ForPath(cfg.StatePath)
		if shared {
			opts = append(opts, figspec.WithLocker(memory.NewLocker(), figspec.DefaultLockTTL))
		}
		eng, err := figspec.New(store, key, opts...)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("opened file store", "path", cfg.StatePath)
		return eng, noop, nil

	case config.StoreRedis:
		ttl, err := cfg.RedisTTL()
		if err != nil {
			return nil, nil, err
		}
		prefix := cfg.Redis.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(prefix), redis.WithTTL(ttl))
		opts = append(opts, figspec.WithLocker(redis.NewLocker(store.Client(), prefix), figspec.DefaultLockTTL))

		eng, err := figspec.New(store, cfg.StateKey(), opts...)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		logger.Debug("opened redis store", "addr", cfg.Redis.Addr, "key", cfg.StateKey())
		return eng, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

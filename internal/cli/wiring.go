package cli

import (
	"fmt"
	"time"

	"festival-quiz/internal/app"
	"festival-quiz/internal/config"
	"festival-quiz/internal/infra/memory"
	redisstore "festival-quiz/internal/infra/redis"
	"festival-quiz/internal/infra/sqlite"
	transport "festival-quiz/internal/transport/http"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "festival-quiz:local"

// clientRuntime holds what the participant-side commands share.
type clientRuntime struct {
	cfg     config.Config
	cache   *app.LocalCache
	remote  *transport.Client
	closers []func() error
}

func openClientRuntime(cfg config.Config) (*clientRuntime, error) {
	store, closer, err := openLocalStore(cfg)
	if err != nil {
		return nil, err
	}
	rt := &clientRuntime{
		cfg:    cfg,
		cache:  app.NewLocalCache(store),
		remote: newRemoteClient(cfg),
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}
	return rt, nil
}

func (r *clientRuntime) Close() {
	for _, c := range r.closers {
		_ = c()
	}
}

func (r *clientRuntime) themes() *app.ThemeSync {
	return app.NewThemeSync(r.cache, r.remote)
}

func (r *clientRuntime) ranking() *app.RankingClient {
	return app.NewRankingClient(r.remote)
}

// questionSource returns the built-in set or the server's sets behind an in-process cache.
func (r *clientRuntime) questionSource() app.QuestionSource {
	if r.cfg.Quiz.Source == config.SourceRemote {
		return memory.NewQuestionCache(r.remote, config.TTLDuration(r.cfg.Quiz.TTL, 10*time.Minute))
	}
	return memory.NewDemoQuestionSource()
}

func newRemoteClient(cfg config.Config) *transport.Client {
	return transport.NewClient(transport.ClientConfig{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: config.TTLDuration(cfg.Remote.Timeout, 5*time.Second),
		Retries: cfg.Remote.Retries,
	})
}

func openLocalStore(cfg config.Config) (app.KeyValueStore, func() error, error) {
	switch cfg.Cache.Driver {
	case config.CacheMemory:
		return memory.NewKVStore(), nil, nil
	case config.CacheRedis:
		client := newRedisClient(cfg.Redis)
		// local data is kept until explicitly cleared
		return redisstore.NewKVStore(client, redisKeyPrefix, 0), client.Close, nil
	case config.CacheSQLite:
		store, err := sqlite.NewKVStore(cfg.Cache.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open local cache: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

func newRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

package domain

import "context"

// Ключи кеша — единое место, чтобы не расползались по коду.
func CacheKeyFile(id FileID) string { return "file:" + id.String() }

// Простой k/v интерфейс. Реализация — Redis. Записи write-once,
// поэтому инвалидация не нужна: что положили, то и правда.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}

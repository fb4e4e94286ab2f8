package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

const scanBatch = 200

// DeleteByPattern remove todas as chaves que casam com o padrão usando SCAN
// (nunca KEYS) e devolve quantas foram removidas. As chaves são coletadas
// antes do DEL: apagar no meio da varredura pode pular chaves.
func DeleteByPattern(ctx context.Context, r redis.UniversalClient, pattern string) (int64, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := r.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return 0, fmt.Errorf("scan %s: %w", pattern, err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}

	var removed int64
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		n, err := r.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return removed, fmt.Errorf("del %s: %w", pattern, err)
		}
		removed += n
	}
	return removed, nil
}

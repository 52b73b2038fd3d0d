package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PricingRedisRepository 最新定价结果的 Redis 缓存
type PricingRedisRepository struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewPricingRedisRepository 创建缓存仓储
func NewPricingRedisRepository(client redis.UniversalClient) *PricingRedisRepository {
	return &PricingRedisRepository{
		client: client,
		prefix: "pricing_result:",
		ttl:    15 * time.Minute,
	}
}

func (r *PricingRedisRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	if symbol == "" {
		return nil, nil
	}
	data, err := r.client.Get(ctx, r.key(symbol)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result domain.PricingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *PricingRedisRepository) SetLatest(ctx context.Context, result *domain.PricingResult) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(result.Symbol), data, r.ttl).Err()
}

func (r *PricingRedisRepository) key(symbol string) string {
	return fmt.Sprintf("%s%s", r.prefix, symbol)
}

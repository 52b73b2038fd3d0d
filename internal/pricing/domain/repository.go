package domain

import "context"

// PricingRepository 定价历史仓储接口
type PricingRepository interface {
	// WithTx 在单个事务内执行 fn，事务经 context 传递
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	SaveResult(ctx context.Context, result *PricingResult) error
	GetLatest(ctx context.Context, symbol string) (*PricingResult, error)
	GetHistory(ctx context.Context, symbol string, limit int) ([]*PricingResult, error)
}

// EventPublisher 领域事件发布接口
// 实现方若检测到 context 中携带事务，应加入该事务（Outbox 模式）。
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, event any) error
}

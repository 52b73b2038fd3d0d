package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	pkgdb "github.com/wyfcoding/optionpricing/pkg/db"
)

type pricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository 创建并返回一个新的 pricingRepository 实例
func NewPricingRepository(db *gorm.DB) domain.PricingRepository {
	return &pricingRepository{db: db}
}

// WithTx 在单个事务内执行 fn，事务经 context 向下传递
func (r *pricingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(pkgdb.WithTxContext(ctx, tx))
	})
}

func (r *pricingRepository) SaveResult(ctx context.Context, result *domain.PricingResult) error {
	model := toModel(result)
	if model == nil {
		return nil
	}
	db := r.getDB(ctx).WithContext(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}
	result.ID = model.ID
	result.CreatedAt = model.CreatedAt
	result.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *pricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	var m PricingResultModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at desc").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *pricingRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var models []PricingResultModel
	if err := r.getDB(ctx).WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at desc").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	results := make([]*domain.PricingResult, len(models))
	for i := range models {
		results[i] = toDomain(&models[i])
	}
	return results, nil
}

func (r *pricingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := pkgdb.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// ResultCache 最新定价结果缓存接口
type ResultCache interface {
	GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error)
	SetLatest(ctx context.Context, result *domain.PricingResult) error
}

// PricingQueryService 处理定价相关的查询操作
type PricingQueryService struct {
	repo   domain.PricingRepository
	cache  ResultCache
	logger *slog.Logger
}

// NewPricingQueryService 创建 PricingQueryService 实例
func NewPricingQueryService(repo domain.PricingRepository, cache ResultCache, logger *slog.Logger) *PricingQueryService {
	return &PricingQueryService{repo: repo, cache: cache, logger: logger}
}

// GetLatest 查询合约的最新定价结果，优先读缓存，未命中时回源并回填
func (s *PricingQueryService) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	if symbol == "" {
		return nil, errors.New("symbol is required")
	}

	if s.cache != nil {
		if cached, err := s.cache.GetLatest(ctx, symbol); err == nil && cached != nil {
			return cached, nil
		}
	}

	result, err := s.repo.GetLatest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if result != nil && s.cache != nil {
		if err := s.cache.SetLatest(ctx, result); err != nil {
			s.logger.WarnContext(ctx, "failed to backfill result cache", "symbol", symbol, "error", err)
		}
	}
	return result, nil
}

// GetHistory 查询合约的历史定价结果，按计算时间倒序
func (s *PricingQueryService) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	if symbol == "" {
		return nil, errors.New("symbol is required")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetHistory(ctx, symbol, limit)
}

// PayoffCurve 在价格区间上采样收益函数，供下游绘制收益曲线
// 区间缺省时取 spot·(1±σ)。
func (s *PricingQueryService) PayoffCurve(q PayoffCurveQuery) ([]CurvePoint, error) {
	if q.Strike <= 0 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidStrike, q.Strike)
	}

	var payoff domain.Payoff
	switch domain.PayoffKind(strings.ToUpper(q.PayoffKind)) {
	case domain.PayoffKindCall:
		payoff = domain.CallPayoff{Strike: q.Strike}
	case domain.PayoffKindPut:
		payoff = domain.PutPayoff{Strike: q.Strike}
	case domain.PayoffKindCertificate:
		if q.Cap <= 0 || q.Factor < 1 {
			return nil, fmt.Errorf("%w: cap=%v factor=%v", domain.ErrInvalidPayoff, q.Cap, q.Factor)
		}
		payoff = domain.CertificatePayoff{Strike: q.Strike, Cap: q.Cap, Factor: q.Factor}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidPayoff, q.PayoffKind)
	}

	minPrice, maxPrice := q.MinPrice, q.MaxPrice
	if minPrice == 0 && maxPrice == 0 {
		if q.Spot <= 0 {
			return nil, fmt.Errorf("%w: price range or spot is required", domain.ErrInvalidSpot)
		}
		minPrice = q.Spot * (1 - q.Volatility)
		maxPrice = q.Spot * (1 + q.Volatility)
	}
	if maxPrice <= minPrice {
		return nil, fmt.Errorf("invalid price range [%v, %v]", minPrice, maxPrice)
	}

	samples := q.Samples
	if samples < 2 {
		samples = 200
	}

	prices := make([]float64, samples)
	step := (maxPrice - minPrice) / float64(samples-1)
	for i := range prices {
		prices[i] = minPrice + float64(i)*step
	}

	curve := make([]CurvePoint, samples)
	for i, v := range domain.Values(payoff, prices) {
		curve[i] = CurvePoint{Price: prices[i], Payout: v}
	}
	return curve, nil
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
)

// PricingCommandService 处理定价相关的命令操作
// 定价结果落库并经 Outbox 发布领域事件。
type PricingCommandService struct {
	repo           domain.PricingRepository
	publisher      domain.EventPublisher
	metrics        *metrics.Metrics
	logger         *slog.Logger
	defaultPeriods int
}

// NewPricingCommandService 创建 PricingCommandService 实例
func NewPricingCommandService(repo domain.PricingRepository, publisher domain.EventPublisher, m *metrics.Metrics, logger *slog.Logger, defaultPeriods int) *PricingCommandService {
	if defaultPeriods < 1 {
		defaultPeriods = 500
	}
	return &PricingCommandService{
		repo:           repo,
		publisher:      publisher,
		metrics:        m,
		logger:         logger,
		defaultPeriods: defaultPeriods,
	}
}

// PriceContract 对合约定价，返回落库后的结果与二叉树网格诊断
// （闭式模型没有网格，诊断为 nil）。
func (s *PricingCommandService) PriceContract(ctx context.Context, cmd PriceContractCommand) (*domain.PricingResult, *domain.BinomialDiagnostics, error) {
	if cmd.Symbol == "" {
		return nil, nil, errors.New("symbol is required")
	}

	contract, err := buildContract(cmd)
	if err != nil {
		return nil, nil, err
	}

	model := strings.ToUpper(cmd.PricingModel)
	if model == "" {
		model = domain.PricingModelBinomial
	}
	periods := cmd.Periods
	if periods == 0 {
		periods = s.defaultPeriods
	}

	start := time.Now()
	var price float64
	var diag *domain.BinomialDiagnostics
	switch model {
	case domain.PricingModelBlackScholes:
		price, err = domain.NewBlackScholesModel().Price(contract)
	case domain.PricingModelBinomial:
		price, diag, err = domain.NewBinomialModel(periods).Price(contract)
	default:
		err = fmt.Errorf("unknown pricing model %q", cmd.PricingModel)
	}
	if s.metrics != nil {
		s.metrics.ObservePricing(model, start, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "pricing failed", "symbol", cmd.Symbol, "model", model, "error", err)
		return nil, nil, err
	}

	now := time.Now()
	result := &domain.PricingResult{
		Symbol:          cmd.Symbol,
		PayoffKind:      contract.Payoff.Kind(),
		ExerciseStyle:   contract.Style,
		PricingModel:    model,
		ContractPrice:   decimal.NewFromFloat(price),
		UnderlyingPrice: decimal.NewFromFloat(cmd.Spot),
		StrikePrice:     decimal.NewFromFloat(cmd.Strike),
		Maturity:        cmd.Maturity,
		Periods:         periods,
		CalculatedAt:    now.Unix(),
	}
	if model == domain.PricingModelBlackScholes {
		result.Periods = 0
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.SaveResult(txCtx, result); err != nil {
			return fmt.Errorf("failed to save pricing result: %w", err)
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.ContractPricedEvent{
			Symbol:          cmd.Symbol,
			PayoffKind:      contract.Payoff.Kind(),
			ExerciseStyle:   contract.Style,
			PricingModel:    model,
			ContractPrice:   price,
			UnderlyingPrice: cmd.Spot,
			StrikePrice:     cmd.Strike,
			Maturity:        cmd.Maturity,
			Volatility:      cmd.Volatility,
			RiskFreeRate:    cmd.RiskFreeRate,
			DividendYield:   cmd.DividendYield,
			Periods:         result.Periods,
			CalculatedAt:    result.CalculatedAt,
			OccurredOn:      now,
		}
		return s.publisher.Publish(txCtx, domain.ContractPricedEventType, cmd.Symbol, event)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "contract priced",
		"symbol", cmd.Symbol, "model", model, "style", contract.Style, "price", price)
	return result, diag, nil
}

// SweepConvergence 在一组周期数上对同一合约独立定价，产出价格-周期数序列
// 合约存在闭式解时附带解析参考价，供下游比较收敛情况。
func (s *PricingCommandService) SweepConvergence(ctx context.Context, cmd ConvergenceCommand) (*ConvergenceResult, error) {
	if len(cmd.Periods) == 0 {
		return nil, errors.New("at least one periods value is required")
	}
	contract, err := buildContract(cmd.Contract)
	if err != nil {
		return nil, err
	}

	points := make([]ConvergencePoint, 0, len(cmd.Periods))
	for _, n := range cmd.Periods {
		price, _, err := domain.NewBinomialModel(n).Price(contract)
		if err != nil {
			return nil, fmt.Errorf("sweep failed at periods=%d: %w", n, err)
		}
		points = append(points, ConvergencePoint{Periods: n, Price: price})
		if s.metrics != nil {
			s.metrics.SweepPointsTotal.Inc()
		}
	}

	var closedForm *float64
	if contract.IsVanilla() && contract.Style == domain.StyleEuropean {
		if v, err := domain.NewBlackScholesModel().Price(contract); err == nil {
			closedForm = &v
		}
	}

	if s.publisher != nil {
		event := domain.ConvergenceCompletedEvent{
			Symbol:         cmd.Contract.Symbol,
			PayoffKind:     string(contract.Payoff.Kind()),
			PeriodsSampled: cmd.Periods,
			ClosedForm:     closedForm,
			CompletedAt:    time.Now().Unix(),
			OccurredOn:     time.Now(),
		}
		if err := s.publisher.Publish(ctx, domain.ConvergenceCompletedEventType, cmd.Contract.Symbol, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish convergence event", "error", err)
		}
	}

	return &ConvergenceResult{
		Symbol:     cmd.Contract.Symbol,
		Points:     points,
		ClosedForm: closedForm,
	}, nil
}

// buildContract 将命令翻译为领域合约，参数校验由领域构造器完成
func buildContract(cmd PriceContractCommand) (*domain.DerivativeContract, error) {
	u, err := domain.NewUnderlying(cmd.Spot, cmd.Volatility, cmd.DividendYield, cmd.RiskFreeRate)
	if err != nil {
		return nil, err
	}

	style := domain.ExerciseStyle(strings.ToUpper(cmd.ExerciseStyle))
	if style == "" {
		style = domain.StyleEuropean
	}

	kind := domain.PayoffKind(strings.ToUpper(cmd.PayoffKind))
	if kind == domain.PayoffKindCertificate {
		return domain.NewCertificateContract(u, cmd.Strike, cmd.Cap, cmd.Factor, cmd.Maturity, style)
	}
	return domain.NewOptionContract(u, kind, cmd.Strike, cmd.Maturity, style)
}

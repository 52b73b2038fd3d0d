package mysql

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PricingResultModel 定价结果的持久化模型
type PricingResultModel struct {
	gorm.Model
	Symbol          string          `gorm:"column:symbol;type:varchar(32);index;not null"`
	PayoffKind      string          `gorm:"column:payoff_kind;type:varchar(32);not null"`
	ExerciseStyle   string          `gorm:"column:exercise_style;type:varchar(16);not null"`
	PricingModel    string          `gorm:"column:pricing_model;type:varchar(32);not null"`
	ContractPrice   decimal.Decimal `gorm:"column:contract_price;type:decimal(20,8);not null"`
	UnderlyingPrice decimal.Decimal `gorm:"column:underlying_price;type:decimal(20,8);not null"`
	StrikePrice     decimal.Decimal `gorm:"column:strike_price;type:decimal(20,8);not null"`
	Maturity        float64         `gorm:"column:maturity;type:double;not null"`
	Periods         int             `gorm:"column:periods;type:int;not null;default:0"`
	CalculatedAt    int64           `gorm:"column:calculated_at;index;not null"`
}

// TableName 指定表名
func (PricingResultModel) TableName() string {
	return "pricing_results"
}

func toModel(r *domain.PricingResult) *PricingResultModel {
	if r == nil {
		return nil
	}
	m := &PricingResultModel{
		Symbol:          r.Symbol,
		PayoffKind:      string(r.PayoffKind),
		ExerciseStyle:   string(r.ExerciseStyle),
		PricingModel:    r.PricingModel,
		ContractPrice:   r.ContractPrice,
		UnderlyingPrice: r.UnderlyingPrice,
		StrikePrice:     r.StrikePrice,
		Maturity:        r.Maturity,
		Periods:         r.Periods,
		CalculatedAt:    r.CalculatedAt,
	}
	m.ID = r.ID
	return m
}

func toDomain(m *PricingResultModel) *domain.PricingResult {
	if m == nil {
		return nil
	}
	return &domain.PricingResult{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Symbol:          m.Symbol,
		PayoffKind:      domain.PayoffKind(m.PayoffKind),
		ExerciseStyle:   domain.ExerciseStyle(m.ExerciseStyle),
		PricingModel:    m.PricingModel,
		ContractPrice:   m.ContractPrice,
		UnderlyingPrice: m.UnderlyingPrice,
		StrikePrice:     m.StrikePrice,
		Maturity:        m.Maturity,
		Periods:         m.Periods,
		CalculatedAt:    m.CalculatedAt,
	}
}

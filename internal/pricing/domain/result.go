package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingResult 定价结果实体
type PricingResult struct {
	ID              uint            `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Symbol          string          `json:"symbol"`
	PayoffKind      PayoffKind      `json:"payoff_kind"`
	ExerciseStyle   ExerciseStyle   `json:"exercise_style"`
	PricingModel    string          `json:"pricing_model"`
	ContractPrice   decimal.Decimal `json:"contract_price"`
	UnderlyingPrice decimal.Decimal `json:"underlying_price"`
	StrikePrice     decimal.Decimal `json:"strike_price"`
	Maturity        float64         `json:"maturity"`
	Periods         int             `json:"periods"`
	CalculatedAt    int64           `json:"calculated_at"`
}

package domain

import "time"

const (
	ContractPricedEventType       = "ContractPriced"
	ConvergenceCompletedEventType = "ConvergenceCompleted"
)

// ContractPricedEvent 合约定价完成事件
type ContractPricedEvent struct {
	Symbol          string        `json:"symbol"`
	PayoffKind      PayoffKind    `json:"payoff_kind"`
	ExerciseStyle   ExerciseStyle `json:"exercise_style"`
	PricingModel    string        `json:"pricing_model"`
	ContractPrice   float64       `json:"contract_price"`
	UnderlyingPrice float64       `json:"underlying_price"`
	StrikePrice     float64       `json:"strike_price"`
	Maturity        float64       `json:"maturity"`
	Volatility      float64       `json:"volatility"`
	RiskFreeRate    float64       `json:"risk_free_rate"`
	DividendYield   float64       `json:"dividend_yield"`
	Periods         int           `json:"periods"`
	CalculatedAt    int64         `json:"calculated_at"`
	OccurredOn      time.Time     `json:"occurred_on"`
}

// ConvergenceCompletedEvent 收敛扫描完成事件
type ConvergenceCompletedEvent struct {
	Symbol         string    `json:"symbol"`
	PayoffKind     string    `json:"payoff_kind"`
	PeriodsSampled []int     `json:"periods_sampled"`
	ClosedForm     *float64  `json:"closed_form,omitempty"`
	CompletedAt    int64     `json:"completed_at"`
	OccurredOn     time.Time `json:"occurred_on"`
}

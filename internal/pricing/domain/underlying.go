package domain

import "fmt"

// Underlying 标的资产的市场状态
// 构造后不可变，生命周期为一次定价计算。
type Underlying struct {
	Spot          float64 // 现价
	Volatility    float64 // 年化波动率（小数）
	DividendYield float64 // 连续股息率
	RiskFreeRate  float64 // 连续复利无风险利率（可为负）
}

// NewUnderlying 创建标的资产并校验参数
func NewUnderlying(spot, volatility, dividendYield, riskFreeRate float64) (Underlying, error) {
	if spot <= 0 {
		return Underlying{}, fmt.Errorf("%w: got %v", ErrInvalidSpot, spot)
	}
	if volatility < 0 {
		return Underlying{}, fmt.Errorf("%w: got %v", ErrInvalidVolatility, volatility)
	}
	return Underlying{
		Spot:          spot,
		Volatility:    volatility,
		DividendYield: dividendYield,
		RiskFreeRate:  riskFreeRate,
	}, nil
}

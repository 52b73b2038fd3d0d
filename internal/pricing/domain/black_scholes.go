package domain

import (
	"fmt"
	"math"
)

// BlackScholesModel Black-Scholes-Merton 闭式定价模型
// 仅适用于普通看涨/看跌期权；结构化收益没有闭式解。
type BlackScholesModel struct{}

// NewBlackScholesModel 创建闭式定价模型
func NewBlackScholesModel() *BlackScholesModel {
	return &BlackScholesModel{}
}

// Price 按解析公式定价
//
// d1 = (ln(S/K) + (r − q + σ²/2)·T) / (σ·√T)
// d2 = d1 − σ·√T
// Call = S·e^(−qT)·N(d1) − K·e^(−rT)·N(d2)
// Put  = K·e^(−rT)·N(−d2) − S·e^(−qT)·N(−d1)
func (m *BlackScholesModel) Price(c *DerivativeContract) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	kind := c.Payoff.Kind()
	if kind != PayoffKindCall && kind != PayoffKindPut {
		return 0, fmt.Errorf("%w: no closed form for %s", ErrUnsupportedContract, kind)
	}

	u := c.Underlying
	if u.Volatility == 0 || c.Maturity == 0 {
		return 0, fmt.Errorf("%w: volatility=%v maturity=%v", ErrNumericalDegeneracy, u.Volatility, c.Maturity)
	}

	sqrtT := math.Sqrt(c.Maturity)
	d1 := (math.Log(u.Spot/c.Strike) + (u.RiskFreeRate-u.DividendYield+0.5*u.Volatility*u.Volatility)*c.Maturity) / (u.Volatility * sqrtT)
	d2 := d1 - u.Volatility*sqrtT

	discountQ := math.Exp(-u.DividendYield * c.Maturity)
	discountR := math.Exp(-u.RiskFreeRate * c.Maturity)

	if kind == PayoffKindCall {
		return u.Spot*discountQ*normCdf(d1) - c.Strike*discountR*normCdf(d2), nil
	}
	return c.Strike*discountR*normCdf(-d2) - u.Spot*discountQ*normCdf(-d1), nil
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

package domain

import "errors"

var (
	// 配置类错误：输入参数非法，定价计算不会开始
	ErrInvalidSpot       = errors.New("spot price must be positive")
	ErrInvalidVolatility = errors.New("volatility must not be negative")
	ErrInvalidMaturity   = errors.New("maturity must be positive")
	ErrInvalidStrike     = errors.New("strike price must be positive")
	ErrInvalidPeriods    = errors.New("binomial periods must be at least 1")
	ErrInvalidPayoff     = errors.New("invalid payoff parameters")
	ErrInvalidStyle      = errors.New("invalid exercise style")
	ErrNilContract       = errors.New("contract is nil")

	// 模型类错误：风险中性概率越界或 u == d，
	// 说明步长与波动率的组合不满足无套利条件
	ErrInvalidModel = errors.New("model parameters are not arbitrage consistent")

	// 闭式模型不支持的合约类型
	ErrUnsupportedContract = errors.New("contract not supported by this pricing model")

	// 数值退化：波动率或期限为零导致 d1/d2 除零
	ErrNumericalDegeneracy = errors.New("zero volatility or maturity degenerates the closed form")
)

package domain

import "fmt"

// ExerciseStyle 行权方式
type ExerciseStyle string

const (
	StyleEuropean ExerciseStyle = "EUROPEAN" // 仅到期可行权
	StyleAmerican ExerciseStyle = "AMERICAN" // 任意节点可行权
)

// DerivativeContract 衍生品合约
// 绑定标的、收益结构、期限、行权价与行权方式；构造后不可变。
type DerivativeContract struct {
	Underlying Underlying
	Maturity   float64 // 剩余期限（年）
	Strike     float64
	Style      ExerciseStyle
	Payoff     Payoff
}

// NewOptionContract 创建普通看涨/看跌期权合约
func NewOptionContract(u Underlying, kind PayoffKind, strike, maturity float64, style ExerciseStyle) (*DerivativeContract, error) {
	var payoff Payoff
	switch kind {
	case PayoffKindCall:
		payoff = CallPayoff{Strike: strike}
	case PayoffKindPut:
		payoff = PutPayoff{Strike: strike}
	default:
		return nil, fmt.Errorf("%w: kind %q is not a vanilla option", ErrInvalidPayoff, kind)
	}
	return newContract(u, payoff, strike, maturity, style)
}

// NewCertificateContract 创建结构化凭证合约
func NewCertificateContract(u Underlying, strike, cap, factor, maturity float64, style ExerciseStyle) (*DerivativeContract, error) {
	if cap <= 0 {
		return nil, fmt.Errorf("%w: cap must be positive, got %v", ErrInvalidPayoff, cap)
	}
	if factor < 1 {
		return nil, fmt.Errorf("%w: participation factor must be at least 1, got %v", ErrInvalidPayoff, factor)
	}
	payoff := CertificatePayoff{Strike: strike, Cap: cap, Factor: factor}
	return newContract(u, payoff, strike, maturity, style)
}

func newContract(u Underlying, payoff Payoff, strike, maturity float64, style ExerciseStyle) (*DerivativeContract, error) {
	c := &DerivativeContract{
		Underlying: u,
		Maturity:   maturity,
		Strike:     strike,
		Style:      style,
		Payoff:     payoff,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 校验合约参数，非法输入在任何计算开始前被拒绝
func (c *DerivativeContract) Validate() error {
	if c == nil {
		return ErrNilContract
	}
	if c.Underlying.Spot <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidSpot, c.Underlying.Spot)
	}
	if c.Underlying.Volatility < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidVolatility, c.Underlying.Volatility)
	}
	if c.Maturity <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidMaturity, c.Maturity)
	}
	if c.Strike <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidStrike, c.Strike)
	}
	if c.Style != StyleEuropean && c.Style != StyleAmerican {
		return fmt.Errorf("%w: %q", ErrInvalidStyle, c.Style)
	}
	if c.Payoff == nil {
		return fmt.Errorf("%w: payoff is nil", ErrInvalidPayoff)
	}
	return nil
}

// IsVanilla 是否为普通看涨/看跌期权
func (c *DerivativeContract) IsVanilla() bool {
	kind := c.Payoff.Kind()
	return kind == PayoffKindCall || kind == PayoffKindPut
}

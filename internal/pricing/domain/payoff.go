package domain

import "math"

// PayoffKind 收益结构类型
type PayoffKind string

const (
	PayoffKindCall        PayoffKind = "CALL"                   // 看涨期权
	PayoffKindPut         PayoffKind = "PUT"                    // 看跌期权
	PayoffKindCertificate PayoffKind = "STRUCTURED_CERTIFICATE" // 结构化凭证（封顶 + 参与率）
)

// Payoff 收益函数
// Value 对任意正价格均有定义，既用于终端节点也用于中间节点的行权价值。
type Payoff interface {
	Kind() PayoffKind
	Value(price float64) float64
}

// Values 对价格切片逐元素求值，返回同形状的结果
func Values(p Payoff, prices []float64) []float64 {
	values := make([]float64, len(prices))
	for i, s := range prices {
		values[i] = p.Value(s)
	}
	return values
}

// CallPayoff 看涨收益：max(0, S − K)
type CallPayoff struct {
	Strike float64
}

func (p CallPayoff) Kind() PayoffKind { return PayoffKindCall }

func (p CallPayoff) Value(price float64) float64 {
	return math.Max(0, price-p.Strike)
}

// PutPayoff 看跌收益：max(0, K − S)
type PutPayoff struct {
	Strike float64
}

func (p PutPayoff) Kind() PayoffKind { return PayoffKindPut }

func (p PutPayoff) Value(price float64) float64 {
	return math.Max(0, p.Strike-price)
}

// CertificatePayoff 结构化凭证收益
// cap_payout = (Cap − K)·Factor
// payoff = min(cap_payout, max(S − K, (S − K)·Factor)) + S
type CertificatePayoff struct {
	Strike float64
	Cap    float64 // 封顶参考价
	Factor float64 // 参与率，≥ 1
}

func (p CertificatePayoff) Kind() PayoffKind { return PayoffKindCertificate }

func (p CertificatePayoff) Value(price float64) float64 {
	capPayout := (p.Cap - p.Strike) * p.Factor
	return math.Min(capPayout, math.Max(price-p.Strike, (price-p.Strike)*p.Factor)) + price
}

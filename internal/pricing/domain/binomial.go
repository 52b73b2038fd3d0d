package domain

import (
	"fmt"
	"math"
)

// 定价模型标识
const (
	PricingModelBinomial     = "BINOMIAL"
	PricingModelBlackScholes = "BLACK_SCHOLES"
)

// BinomialModel Cox-Ross-Rubinstein 二叉树定价模型
// 计算量随周期数按 O(periods²) 增长。
type BinomialModel struct {
	Periods int
}

// NewBinomialModel 创建指定周期数的二叉树模型
func NewBinomialModel(periods int) *BinomialModel {
	return &BinomialModel{Periods: periods}
}

// BinomialDiagnostics 一次定价的完整网格，供下游检查或绘图
type BinomialDiagnostics struct {
	Stock  *Lattice // 标的价格网格
	Payoff *Lattice // 终端收益网格
	Value  *Lattice // 回溯后的合约价值网格
}

// Price 对合约定价，返回零时刻价格与网格诊断
//
// 步骤：推导上下行因子与风险中性概率 → 构建价格网格 →
// 终端收益 → 按列回溯贴现。periods = 0 无法回溯，直接拒绝。
func (m *BinomialModel) Price(c *DerivativeContract) (float64, *BinomialDiagnostics, error) {
	if m.Periods < 1 {
		return 0, nil, fmt.Errorf("%w: got %d", ErrInvalidPeriods, m.Periods)
	}
	if err := c.Validate(); err != nil {
		return 0, nil, err
	}

	u := c.Underlying
	deltaT := c.Maturity / float64(m.Periods)
	up := math.Exp(u.Volatility * math.Sqrt(deltaT))
	down := 1 / up
	if up == down {
		return 0, nil, fmt.Errorf("%w: u == d == %v", ErrInvalidModel, up)
	}

	drift := math.Exp((u.RiskFreeRate - u.DividendYield) * deltaT)
	pUp := (drift - down) / (up - down)
	if pUp < 0 || pUp > 1 {
		return 0, nil, fmt.Errorf("%w: risk neutral probability %v outside [0,1]", ErrInvalidModel, pUp)
	}
	pDown := 1 - pUp
	discount := math.Exp(-(u.RiskFreeRate - u.DividendYield) * deltaT)

	stock := m.stockLattice(u.Spot, up, down)
	payoff := m.terminalPayoffs(stock, c.Payoff)
	value := m.inductBackward(stock, payoff, c, pUp, pDown, discount)

	diag := &BinomialDiagnostics{Stock: stock, Payoff: payoff, Value: value}
	return value.At(0, 0), diag, nil
}

// stockLattice 构建价格网格：price[i][j] = spot · u^i · d^(j−i)
func (m *BinomialModel) stockLattice(spot, up, down float64) *Lattice {
	tree := NewLattice(m.Periods)
	for j := 0; j <= m.Periods; j++ {
		for i := 0; i <= j; i++ {
			tree.Set(i, j, spot*math.Pow(up, float64(i))*math.Pow(down, float64(j-i)))
		}
	}
	return tree
}

// terminalPayoffs 在最后一列上对每个节点价格求收益
func (m *BinomialModel) terminalPayoffs(stock *Lattice, payoff Payoff) *Lattice {
	tree := NewLattice(m.Periods)
	last := m.Periods
	for i, v := range Values(payoff, stock.Column(last)) {
		tree.Set(i, last, v)
	}
	return tree
}

// inductBackward 从到期列向零时刻回溯
//
// 第 j 列仅依赖第 j+1 列，必须按列递减顺序处理；打乱该顺序
// 不会崩溃，而是静默产出错误的价格。美式合约在每个节点上将
// 继续持有价值与即期行权价值取大，行权价值总是用该节点的
// 网格价格重新经收益函数求出，绝不复用终端数组里的旧值。
func (m *BinomialModel) inductBackward(stock, payoff *Lattice, c *DerivativeContract, pUp, pDown, discount float64) *Lattice {
	value := payoff.Clone()
	american := c.Style == StyleAmerican
	for j := m.Periods - 1; j >= 0; j-- {
		for i := 0; i <= j; i++ {
			continuation := (pUp*value.At(i+1, j+1) + pDown*value.At(i, j+1)) * discount
			if american {
				if exercise := c.Payoff.Value(stock.At(i, j)); exercise > continuation {
					continuation = exercise
				}
			}
			value.Set(i, j, continuation)
		}
	}
	return value
}

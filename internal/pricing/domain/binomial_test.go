package domain

import (
	"errors"
	"math"
	"testing"
)

func TestBinomialConvergesToClosedForm(t *testing.T) {
	// 固定欧式合约，周期数增大时二叉树价格逼近闭式解
	cases := []struct {
		name             string
		spot, vol, rate  float64
		strike, maturity float64
		kind             PayoffKind
		tol              float64
	}{
		{"classic_call", 100, 0.2, 0.05, 100, 1, PayoffKindCall, 0.05},
		{"index_put_negative_rate", 13144.28, 0.2414, -0.00517, 14000, 0.5, PayoffKindPut, 2.0},
	}
	bs := NewBlackScholesModel()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := mustUnderlying(t, tc.spot, tc.vol, 0, tc.rate)
			contract := mustOption(t, u, tc.kind, tc.strike, tc.maturity, StyleEuropean)

			analytic, err := bs.Price(contract)
			if err != nil {
				t.Fatalf("closed form err: %v", err)
			}

			coarse, _, err := NewBinomialModel(50).Price(contract)
			if err != nil {
				t.Fatalf("binomial(50) err: %v", err)
			}
			fine, _, err := NewBinomialModel(1000).Price(contract)
			if err != nil {
				t.Fatalf("binomial(1000) err: %v", err)
			}

			if !almostEqual(fine, analytic, tc.tol) {
				t.Fatalf("no convergence: binomial(1000)=%v closed form=%v", fine, analytic)
			}
			if math.Abs(fine-analytic) > math.Abs(coarse-analytic) {
				t.Fatalf("discretization error grew: |err(1000)|=%v |err(50)|=%v",
					math.Abs(fine-analytic), math.Abs(coarse-analytic))
			}
		})
	}
}

func TestBinomialAmericanNotBelowEuropean(t *testing.T) {
	// 同一网格上美式价格不低于欧式价格
	u := mustUnderlying(t, 100, 0.2, 0, 0.05)
	model := NewBinomialModel(200)

	for _, kind := range []PayoffKind{PayoffKindCall, PayoffKindPut} {
		european, _, err := model.Price(mustOption(t, u, kind, 100, 1, StyleEuropean))
		if err != nil {
			t.Fatalf("%s european err: %v", kind, err)
		}
		american, _, err := model.Price(mustOption(t, u, kind, 100, 1, StyleAmerican))
		if err != nil {
			t.Fatalf("%s american err: %v", kind, err)
		}
		if american < european-1e-12 {
			t.Fatalf("%s: american=%v < european=%v", kind, american, european)
		}
	}

	// 正利率下的深度实值美式看跌应出现提前行权溢价
	deep := mustUnderlying(t, 80, 0.2, 0, 0.08)
	european, _, _ := model.Price(mustOption(t, deep, PayoffKindPut, 100, 1, StyleEuropean))
	american, _, _ := model.Price(mustOption(t, deep, PayoffKindPut, 100, 1, StyleAmerican))
	if american <= european {
		t.Fatalf("expected early exercise premium: american=%v european=%v", american, european)
	}
}

func TestBinomialLatticeRecombines(t *testing.T) {
	// 节点 (i,j) 必须恰好等于 spot·u^i·d^(j−i)
	u := mustUnderlying(t, 100, 0.3, 0, 0.02)
	contract := mustOption(t, u, PayoffKindCall, 100, 1, StyleEuropean)

	periods := 8
	_, diag, err := NewBinomialModel(periods).Price(contract)
	if err != nil {
		t.Fatalf("price err: %v", err)
	}

	deltaT := contract.Maturity / float64(periods)
	up := math.Exp(u.Volatility * math.Sqrt(deltaT))
	down := 1 / up
	for j := 0; j <= periods; j++ {
		for i := 0; i <= j; i++ {
			want := u.Spot * math.Pow(up, float64(i)) * math.Pow(down, float64(j-i))
			if !almostEqual(diag.Stock.At(i, j), want, 1e-9) {
				t.Fatalf("node (%d,%d): got=%v want=%v", i, j, diag.Stock.At(i, j), want)
			}
		}
	}

	// 上行后下行必须回到起点
	if !almostEqual(diag.Stock.At(1, 2), u.Spot, 1e-9) {
		t.Fatalf("up-down path did not recombine: got=%v", diag.Stock.At(1, 2))
	}
}

func TestBinomialDiagnostics(t *testing.T) {
	u := mustUnderlying(t, 100, 0.2, 0, 0.05)
	contract := mustOption(t, u, PayoffKindCall, 100, 1, StyleEuropean)

	periods := 4
	price, diag, err := NewBinomialModel(periods).Price(contract)
	if err != nil {
		t.Fatalf("price err: %v", err)
	}

	if diag.Stock == nil || diag.Payoff == nil || diag.Value == nil {
		t.Fatal("diagnostics lattices missing")
	}
	if diag.Value.At(0, 0) != price {
		t.Fatalf("price %v differs from value lattice root %v", price, diag.Value.At(0, 0))
	}
	// 终端列收益必须由收益函数作用于终端价格得到
	for i := 0; i <= periods; i++ {
		want := contract.Payoff.Value(diag.Stock.At(i, periods))
		if !almostEqual(diag.Payoff.At(i, periods), want, 1e-12) {
			t.Fatalf("terminal payoff (%d): got=%v want=%v", i, diag.Payoff.At(i, periods), want)
		}
	}
}

func TestBinomialMonotoneInSpot(t *testing.T) {
	model := NewBinomialModel(200)
	var lastCall, lastPut float64
	for i, s := range []float64{80, 90, 100, 110, 120} {
		u := mustUnderlying(t, s, 0.2, 0, 0.05)
		call, _, err := model.Price(mustOption(t, u, PayoffKindCall, 100, 1, StyleEuropean))
		if err != nil {
			t.Fatalf("call err: %v", err)
		}
		put, _, err := model.Price(mustOption(t, u, PayoffKindPut, 100, 1, StyleEuropean))
		if err != nil {
			t.Fatalf("put err: %v", err)
		}
		if i > 0 && (call < lastCall || put > lastPut) {
			t.Fatalf("monotonicity violated at spot=%v", s)
		}
		lastCall, lastPut = call, put
	}
}

func TestBinomialPricesCertificate(t *testing.T) {
	// 引擎对收益结构不可知，结构化凭证同样可以定价
	u := mustUnderlying(t, 100, 0.2, 0, 0.01)
	c, err := NewCertificateContract(u, 100, 120, 2, 1, StyleEuropean)
	if err != nil {
		t.Fatalf("NewCertificateContract: %v", err)
	}
	price, _, err := NewBinomialModel(300).Price(c)
	if err != nil {
		t.Fatalf("price err: %v", err)
	}
	// 凭证始终支付 S 加上有界的结构化部分：价值必须为正且有限
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		t.Fatalf("implausible certificate price: %v", price)
	}
}

func TestBinomialRejectsDegenerateInputs(t *testing.T) {
	u := mustUnderlying(t, 100, 0.2, 0, 0.05)
	contract := mustOption(t, u, PayoffKindCall, 100, 1, StyleEuropean)

	t.Run("zero_periods", func(t *testing.T) {
		_, _, err := NewBinomialModel(0).Price(contract)
		if !errors.Is(err, ErrInvalidPeriods) {
			t.Fatalf("expected ErrInvalidPeriods, got %v", err)
		}
	})

	t.Run("negative_periods", func(t *testing.T) {
		_, _, err := NewBinomialModel(-5).Price(contract)
		if !errors.Is(err, ErrInvalidPeriods) {
			t.Fatalf("expected ErrInvalidPeriods, got %v", err)
		}
	})

	t.Run("zero_volatility_degenerates_model", func(t *testing.T) {
		// σ = 0 时 u == d == 1，模型退化
		flat := mustUnderlying(t, 100, 0, 0, 0.05)
		c := mustOption(t, flat, PayoffKindCall, 100, 1, StyleEuropean)
		_, _, err := NewBinomialModel(10).Price(c)
		if !errors.Is(err, ErrInvalidModel) {
			t.Fatalf("expected ErrInvalidModel, got %v", err)
		}
	})

	t.Run("probability_out_of_range", func(t *testing.T) {
		// 漂移远超上行因子时 p_u > 1，与无套利条件矛盾
		hot := mustUnderlying(t, 100, 0.01, 0, 5)
		c := mustOption(t, hot, PayoffKindCall, 100, 1, StyleEuropean)
		_, _, err := NewBinomialModel(1).Price(c)
		if !errors.Is(err, ErrInvalidModel) {
			t.Fatalf("expected ErrInvalidModel, got %v", err)
		}
	})

	t.Run("nil_contract", func(t *testing.T) {
		_, _, err := NewBinomialModel(10).Price(nil)
		if !errors.Is(err, ErrNilContract) {
			t.Fatalf("expected ErrNilContract, got %v", err)
		}
	})
}

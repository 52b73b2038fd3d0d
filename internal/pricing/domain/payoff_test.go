package domain

import "testing"

func TestCallPayoffBoundaries(t *testing.T) {
	p := CallPayoff{Strike: 100}
	cases := []struct{ price, want float64 }{
		{100, 0},
		{150, 50},
		{50, 0},
	}
	for _, tc := range cases {
		if got := p.Value(tc.price); got != tc.want {
			t.Fatalf("call payoff(%v): got=%v want=%v", tc.price, got, tc.want)
		}
	}
}

func TestPutPayoffBoundaries(t *testing.T) {
	p := PutPayoff{Strike: 100}
	cases := []struct{ price, want float64 }{
		{50, 50},
		{150, 0},
		{100, 0},
	}
	for _, tc := range cases {
		if got := p.Value(tc.price); got != tc.want {
			t.Fatalf("put payoff(%v): got=%v want=%v", tc.price, got, tc.want)
		}
	}
}

func TestCertificatePayoff(t *testing.T) {
	// K=100, cap=120, factor=2 → cap_payout = 40
	p := CertificatePayoff{Strike: 100, Cap: 120, Factor: 2}
	cases := []struct {
		name        string
		price, want float64
	}{
		{"participating_zone", 110, 130}, // min(40, max(10,20)) + 110
		{"capped_zone", 130, 170},        // min(40, max(30,60)) + 130
		{"below_strike", 90, 80},         // min(40, max(−10,−20)) + 90
		{"at_strike", 100, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Value(tc.price); !almostEqual(got, tc.want, 1e-12) {
				t.Fatalf("certificate payoff(%v): got=%v want=%v", tc.price, got, tc.want)
			}
		})
	}
}

func TestValuesElementwise(t *testing.T) {
	// 切片求值与逐个标量求值形状一致、数值一致
	p := CallPayoff{Strike: 100}
	prices := []float64{50, 100, 150, 200}
	values := Values(p, prices)
	if len(values) != len(prices) {
		t.Fatalf("shape mismatch: got=%d want=%d", len(values), len(prices))
	}
	for i, s := range prices {
		if values[i] != p.Value(s) {
			t.Fatalf("element %d: got=%v want=%v", i, values[i], p.Value(s))
		}
	}
}

func TestContractValidation(t *testing.T) {
	u := mustUnderlying(t, 100, 0.2, 0, 0.05)

	if _, err := NewOptionContract(u, PayoffKindCall, -1, 1, StyleEuropean); err == nil {
		t.Fatal("expected error for negative strike")
	}
	if _, err := NewOptionContract(u, PayoffKindCall, 100, -0.5, StyleEuropean); err == nil {
		t.Fatal("expected error for negative maturity")
	}
	if _, err := NewOptionContract(u, PayoffKindCall, 100, 1, ExerciseStyle("BERMUDAN")); err == nil {
		t.Fatal("expected error for unknown exercise style")
	}
	if _, err := NewOptionContract(u, PayoffKindCertificate, 100, 1, StyleEuropean); err == nil {
		t.Fatal("expected error for certificate via vanilla constructor")
	}
	if _, err := NewCertificateContract(u, 100, 120, 0.5, 1, StyleEuropean); err == nil {
		t.Fatal("expected error for participation factor below 1")
	}
	if _, err := NewUnderlying(0, 0.2, 0, 0.05); err == nil {
		t.Fatal("expected error for zero spot")
	}
	if _, err := NewUnderlying(100, -0.2, 0, 0.05); err == nil {
		t.Fatal("expected error for negative volatility")
	}
	// 负利率是合法输入
	if _, err := NewUnderlying(100, 0.2, 0, -0.01); err != nil {
		t.Fatalf("negative rate must be accepted: %v", err)
	}
}

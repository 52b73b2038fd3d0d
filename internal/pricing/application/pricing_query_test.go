package application

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

type fakeCache struct {
	store map[string]*domain.PricingResult
	hits  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]*domain.PricingResult{}}
}

func (c *fakeCache) GetLatest(_ context.Context, symbol string) (*domain.PricingResult, error) {
	if r, ok := c.store[symbol]; ok {
		c.hits++
		return r, nil
	}
	return nil, nil
}

func (c *fakeCache) SetLatest(_ context.Context, result *domain.PricingResult) error {
	c.store[result.Symbol] = result
	return nil
}

func TestGetLatestBackfillsCache(t *testing.T) {
	repo := &fakeRepo{}
	repo.results = append(repo.results, &domain.PricingResult{
		ID:            1,
		Symbol:        "DAX-14000-P",
		PricingModel:  domain.PricingModelBinomial,
		ContractPrice: decimal.NewFromFloat(1500.25),
	})
	cache := newFakeCache()
	svc := NewPricingQueryService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	first, err := svc.GetLatest(ctx, "DAX-14000-P")
	if err != nil || first == nil {
		t.Fatalf("GetLatest: %v %v", first, err)
	}
	if _, ok := cache.store["DAX-14000-P"]; !ok {
		t.Fatal("cache not backfilled")
	}

	if _, err := svc.GetLatest(ctx, "DAX-14000-P"); err != nil {
		t.Fatalf("GetLatest (cached): %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected one cache hit, got %d", cache.hits)
	}
}

func TestGetHistoryLimit(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 5; i++ {
		repo.results = append(repo.results, &domain.PricingResult{
			ID:     uint(i + 1),
			Symbol: "DAX-14000-P",
		})
	}
	svc := NewPricingQueryService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	history, err := svc.GetHistory(context.Background(), "DAX-14000-P", 3)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length: got=%d want=3", len(history))
	}
}

func TestPayoffCurve(t *testing.T) {
	svc := NewPricingQueryService(&fakeRepo{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("explicit_range", func(t *testing.T) {
		curve, err := svc.PayoffCurve(PayoffCurveQuery{
			PayoffKind: "CALL",
			Strike:     100,
			MinPrice:   50,
			MaxPrice:   150,
			Samples:    101,
		})
		if err != nil {
			t.Fatalf("PayoffCurve: %v", err)
		}
		if len(curve) != 101 {
			t.Fatalf("samples: got=%d want=101", len(curve))
		}
		if curve[0].Price != 50 || curve[100].Price != 150 {
			t.Fatalf("range endpoints: %v .. %v", curve[0].Price, curve[100].Price)
		}
		// 行权价处收益为零，右端点为 S − K
		if curve[50].Payout != 0 || curve[100].Payout != 50 {
			t.Fatalf("payout values: mid=%v end=%v", curve[50].Payout, curve[100].Payout)
		}
	})

	t.Run("derived_range", func(t *testing.T) {
		curve, err := svc.PayoffCurve(PayoffCurveQuery{
			PayoffKind: "PUT",
			Strike:     100,
			Spot:       100,
			Volatility: 0.2,
		})
		if err != nil {
			t.Fatalf("PayoffCurve: %v", err)
		}
		if len(curve) != 200 {
			t.Fatalf("default samples: got=%d want=200", len(curve))
		}
		if math.Abs(curve[0].Price-80) > 1e-9 {
			t.Fatalf("derived lower bound: got=%v want=80", curve[0].Price)
		}
	})

	t.Run("unknown_kind", func(t *testing.T) {
		if _, err := svc.PayoffCurve(PayoffCurveQuery{PayoffKind: "BARRIER", Strike: 100, MinPrice: 1, MaxPrice: 2}); err == nil {
			t.Fatal("expected error for unknown payoff kind")
		}
	})
}

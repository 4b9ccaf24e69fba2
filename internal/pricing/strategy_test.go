package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/example/goshop/internal/domain"
)

func TestFixed(t *testing.T) {
	s := Fixed{}
	cases := []struct {
		base, qty, want int64
	}{
		{1000, 1, 1000},
		{1000, 3, 3000},
		{0, 5, 0},
		{999, 7, 6993},
	}
	for _, c := range cases {
		if got := s.CalculatePrice(c.base, c.qty); got != c.want {
			t.Errorf("Fixed(%d, %d) = %d, want %d", c.base, c.qty, got, c.want)
		}
	}
}

func TestVolumeDiscount_BelowThresholdEqualsFixed(t *testing.T) {
	v := NewVolumeDiscount(10, 0.10)
	f := Fixed{}
	for qty := int64(1); qty < 10; qty++ {
		for _, base := range []int64{0, 1, 990, 123456} {
			if got, want := v.CalculatePrice(base, qty), f.CalculatePrice(base, qty); got != want {
				t.Errorf("qty=%d base=%d: volume=%d fixed=%d", qty, base, got, want)
			}
		}
	}
}

func TestVolumeDiscount_AtThresholdApplies(t *testing.T) {
	v := NewVolumeDiscount(10, 0.10)
	for _, qty := range []int64{10, 11, 50} {
		for _, base := range []int64{100, 990, 123456} {
			want := int64(math.Round(float64(base*qty) * 0.9))
			if got := v.CalculatePrice(base, qty); got != want {
				t.Errorf("qty=%d base=%d: got %d, want %d", qty, base, got, want)
			}
		}
	}
}

func TestVolumeDiscount_Defaults(t *testing.T) {
	v := NewVolumeDiscount(0, 0)
	if v.Threshold != 10 || v.Discount != 0.10 {
		t.Errorf("defaults = %+v, want threshold 10 discount 0.10", v)
	}
	v = NewVolumeDiscount(-5, 1.5)
	if v.Threshold != 10 || v.Discount != 0.10 {
		t.Errorf("invalid args not normalized: %+v", v)
	}
}

func TestPromotion(t *testing.T) {
	p := NewPromotion(0.15)
	cases := []struct {
		base, qty int64
	}{
		{1000, 1},
		{1000, 3},
		{990, 100},
	}
	for _, c := range cases {
		want := int64(math.Round(float64(c.base*c.qty) * 0.85))
		if got := p.CalculatePrice(c.base, c.qty); got != want {
			t.Errorf("Promotion(%d, %d) = %d, want %d", c.base, c.qty, got, want)
		}
	}

	if def := NewPromotion(0); def.Discount != 0.15 {
		t.Errorf("default discount = %v, want 0.15", def.Discount)
	}
}

func TestNew_Registry(t *testing.T) {
	for _, kind := range []string{KindFixed, KindVolume, KindPromotion} {
		s, err := New(kind)
		if err != nil {
			t.Fatalf("New(%q) error: %v", kind, err)
		}
		if s == nil {
			t.Fatalf("New(%q) returned nil strategy", kind)
		}
	}

	_, err := New("bogus")
	var unsupported *domain.UnsupportedStrategyError
	if !errors.As(err, &unsupported) {
		t.Fatalf("New(bogus) error = %v, want UnsupportedStrategyError", err)
	}
	if unsupported.Kind != "bogus" {
		t.Errorf("error kind = %q, want bogus", unsupported.Kind)
	}
}

func TestContext_SwapStrategy(t *testing.T) {
	ctx := NewContext(nil)
	if got := ctx.CalculatePrice(1000, 2); got != 2000 {
		t.Fatalf("default context price = %d, want 2000", got)
	}

	ctx.SetStrategy(NewPromotion(0.15))
	if got := ctx.CalculatePrice(1000, 2); got != 1700 {
		t.Fatalf("after swap price = %d, want 1700", got)
	}

	// nil 不应覆盖当前策略
	ctx.SetStrategy(nil)
	if got := ctx.CalculatePrice(1000, 2); got != 1700 {
		t.Fatalf("nil swap changed strategy: %d", got)
	}
}

package report

import (
	"errors"
	"testing"
	"time"

	"github.com/example/goshop/internal/domain"
)

var (
	from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
)

func requireIncomplete(t *testing.T, err error) *domain.IncompleteReportError {
	t.Helper()
	var incomplete *domain.IncompleteReportError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %v, want IncompleteReportError", err)
	}
	return incomplete
}

func TestBuild_MissingTitle(t *testing.T) {
	_, err := NewBuilder().SetDateRange(from, to).Build()
	requireIncomplete(t, err)
}

func TestBuild_MissingDateRange(t *testing.T) {
	_, err := NewBuilder().SetTitle("月报").Build()
	requireIncomplete(t, err)
}

func TestBuild_InvertedDateRange(t *testing.T) {
	_, err := NewBuilder().SetTitle("月报").SetDateRange(to, from).Build()
	requireIncomplete(t, err)
}

func TestBuild_Defaults(t *testing.T) {
	r, err := NewBuilder().SetTitle("月报").SetDateRange(from, to).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if r.TotalSales != 0 || r.OrderCount != 0 {
		t.Errorf("defaults: total=%d count=%d, want 0/0", r.TotalSales, r.OrderCount)
	}
	if len(r.TopProducts) != 0 || len(r.Filters) != 0 {
		t.Errorf("defaults: topProducts=%v filters=%v, want empty", r.TopProducts, r.Filters)
	}
}

func TestBuild_FullReport(t *testing.T) {
	r, err := NewBuilder().
		SetTitle("一月销售报表").
		SetDateRange(from, to).
		SetTotalSales(1500000).
		SetOrderCount(42).
		SetTopProducts([]ProductSales{{Name: "T恤", Quantity: 30}}).
		AddFilter("total > 100").
		AddFilter("total > 100"). // 允许重复
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if r.Title != "一月销售报表" || r.TotalSales != 1500000 || r.OrderCount != 42 {
		t.Errorf("unexpected report: %+v", r)
	}
	if len(r.Filters) != 2 {
		t.Errorf("filters = %v, want two (duplicates preserved)", r.Filters)
	}
}

func TestReset(t *testing.T) {
	b := NewBuilder().
		SetTitle("x").
		SetDateRange(from, to).
		SetTotalSales(100).
		AddFilter("f")

	r, err := b.Reset().SetTitle("y").SetDateRange(from, to).Build()
	if err != nil {
		t.Fatalf("Build() after Reset error: %v", err)
	}
	if r.TotalSales != 0 || len(r.Filters) != 0 {
		t.Errorf("reset did not clear state: %+v", r)
	}
}

func TestBuild_SnapshotIsImmutable(t *testing.T) {
	b := NewBuilder().
		SetTitle("快照").
		SetDateRange(from, to).
		AddFilter("first")

	r1, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	b.AddFilter("second").SetTotalSales(999)
	if len(r1.Filters) != 1 || r1.Filters[0] != "first" {
		t.Errorf("builder mutation leaked into built report: %v", r1.Filters)
	}
	if r1.TotalSales != 0 {
		t.Errorf("builder mutation leaked into built report: total=%d", r1.TotalSales)
	}
}

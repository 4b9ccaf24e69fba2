package report

import (
	"time"

	"github.com/example/goshop/internal/domain"
)

// ProductSales 报表中的商品销量条目
type ProductSales struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// DateRange 报表统计区间
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SalesReport 销售报表，Build 之后不可变
type SalesReport struct {
	Title       string         `json:"title"`
	DateRange   DateRange      `json:"date_range"`
	TotalSales  int64          `json:"total_sales"` // 分
	OrderCount  int64          `json:"order_count"`
	TopProducts []ProductSales `json:"top_products"`
	Filters     []string       `json:"filters"`
}

// Builder 链式构建销售报表，Title 和 DateRange 为必填项
type Builder struct {
	title       string
	hasRange    bool
	from, to    time.Time
	totalSales  int64
	orderCount  int64
	topProducts []ProductSales
	filters     []string
}

// NewBuilder 创建空的报表构建器
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) SetTitle(title string) *Builder {
	b.title = title
	return b
}

func (b *Builder) SetDateRange(from, to time.Time) *Builder {
	b.hasRange = true
	b.from = from
	b.to = to
	return b
}

func (b *Builder) SetTotalSales(total int64) *Builder {
	b.totalSales = total
	return b
}

func (b *Builder) SetOrderCount(count int64) *Builder {
	b.orderCount = count
	return b
}

func (b *Builder) SetTopProducts(products []ProductSales) *Builder {
	b.topProducts = products
	return b
}

// AddFilter 追加过滤条件，保序且允许重复
func (b *Builder) AddFilter(filter string) *Builder {
	b.filters = append(b.filters, filter)
	return b
}

// Reset 清空全部累积状态，复用构建器
func (b *Builder) Reset() *Builder {
	*b = Builder{}
	return b
}

// Build 校验必填项并产出不可变快照：切片都是拷贝，
// 之后继续修改 Builder 不会影响已产出的报表。
func (b *Builder) Build() (*SalesReport, error) {
	if b.title == "" {
		return nil, &domain.IncompleteReportError{Reason: "title is required"}
	}
	if !b.hasRange {
		return nil, &domain.IncompleteReportError{Reason: "date range is required"}
	}
	if b.to.Before(b.from) {
		return nil, &domain.IncompleteReportError{Reason: "date range from must be <= to"}
	}

	r := &SalesReport{
		Title:       b.title,
		DateRange:   DateRange{From: b.from, To: b.to},
		TotalSales:  b.totalSales,
		OrderCount:  b.orderCount,
		TopProducts: make([]ProductSales, len(b.topProducts)),
		Filters:     make([]string, len(b.filters)),
	}
	copy(r.TopProducts, b.topProducts)
	copy(r.Filters, b.filters)
	return r, nil
}

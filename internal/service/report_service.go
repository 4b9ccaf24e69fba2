package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/goshop/internal/datamodels/order"
	"github.com/example/goshop/internal/datamodels/orderline"
	"github.com/example/goshop/internal/report"
)

// topProductLimit 报表中展示的销量前几名
const topProductLimit = 5

// ReportService 从订单数据聚合销售报表
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// SalesBetween 统计 [from, to] 区间内已确认订单的销售报表
func (s *ReportService) SalesBetween(ctx context.Context, title string, from, to time.Time, filters ...string) (*report.SalesReport, error) {
	var agg struct {
		Total int64
		Count int64
	}
	if err := s.db.WithContext(ctx).Model(&order.Order{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND created_at BETWEEN ? AND ?", order.StatusConfirmed, from, to).
		Scan(&agg).Error; err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}

	var top []report.ProductSales
	if err := s.db.WithContext(ctx).Model(&orderline.OrderLine{}).
		Select("products.name AS name, SUM(order_lines.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Where("orders.status = ? AND orders.created_at BETWEEN ? AND ?", order.StatusConfirmed, from, to).
		Group("products.name").
		Order("quantity DESC").
		Limit(topProductLimit).
		Scan(&top).Error; err != nil {
		return nil, fmt.Errorf("aggregate top products: %w", err)
	}

	b := report.NewBuilder().
		SetTitle(title).
		SetDateRange(from, to).
		SetTotalSales(agg.Total).
		SetOrderCount(agg.Count).
		SetTopProducts(top)
	for _, f := range filters {
		b.AddFilter(f)
	}
	return b.Build()
}

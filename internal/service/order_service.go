package service

import (
	"context"

	"github.com/example/goshop/internal/datamodels/order"
	"github.com/example/goshop/internal/datamodels/orderline"
)

// OrderService 订单查询服务，下单/取消见 OrderProcessService
type OrderService struct {
	repo     order.Repository
	lineRepo orderline.Repository
}

// NewOrderService 创建订单查询服务
func NewOrderService(repo order.Repository, lineRepo orderline.Repository) *OrderService {
	return &OrderService{repo: repo, lineRepo: lineRepo}
}

// GetByID 查询订单
func (s *OrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser 查询用户的全部订单
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListRecent 查询最新的订单记录
func (s *OrderService) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	return s.repo.ListRecent(ctx, limit)
}

// LinesByOrder 查询订单明细
func (s *OrderService) LinesByOrder(ctx context.Context, orderID int64) ([]*orderline.OrderLine, error) {
	return s.lineRepo.ListByOrder(ctx, orderID)
}

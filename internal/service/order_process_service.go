package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/goshop/internal/datamodels/order"
	"github.com/example/goshop/internal/datamodels/orderline"
	"github.com/example/goshop/internal/datamodels/product"
	"github.com/example/goshop/internal/datamodels/user"
	"github.com/example/goshop/internal/domain"
	"github.com/example/goshop/internal/notify"
	"github.com/example/goshop/internal/payment"
)

// CreateOrderItem 下单请求中的一项商品
type CreateOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreateOrderInput 下单请求
type CreateOrderInput struct {
	UserID        int64             `json:"user_id"`
	Items         []CreateOrderItem `json:"items"`
	PaymentMethod string            `json:"payment_method"` // 为空表示无需在线支付
	PaymentToken  string            `json:"payment_token"`
}

// OrderProcessService 下单/取消的编排服务：
// 校验 -> 支付 -> 事务内落库扣库存 -> 事后通知。
type OrderProcessService struct {
	db         *gorm.DB
	userRepo   user.Repository
	dispatcher *notify.Dispatcher

	// newGateway 支付适配器工厂，测试用例可替换
	newGateway func(provider string) (payment.Gateway, error)
}

// NewOrderProcessService 创建下单编排服务
func NewOrderProcessService(db *gorm.DB, userRepo user.Repository, dispatcher *notify.Dispatcher) *OrderProcessService {
	if dispatcher == nil {
		dispatcher = notify.Default()
	}
	return &OrderProcessService{
		db:         db,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		newGateway: payment.New,
	}
}

// CreateOrder 创建订单。支付在任何持久化变更之前校验；
// 订单、明细和库存扣减在同一事务内完成，失败整体回滚。
func (s *OrderProcessService) CreateOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error) {
	GetMonitor().RecordOrderRequest()

	o, err := s.createOrder(ctx, in)
	if err != nil {
		GetMonitor().RecordOrderError()
		return nil, err
	}
	GetMonitor().RecordOrderSuccess()
	return o, nil
}

func (s *OrderProcessService) createOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error) {
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Field: "items", Reason: "must not be empty"}
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
		}
	}

	// 1. 校验用户
	u, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "user", ID: in.UserID}
		}
		return nil, err
	}

	// 2. 预检商品与库存，累计总价
	var total int64
	for _, it := range in.Items {
		var p product.Product
		if err := s.db.WithContext(ctx).First(&p, it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &domain.NotFoundError{Entity: "product", ID: it.ProductID}
			}
			return nil, err
		}
		if p.Stock < it.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   it.Quantity,
				Available:   p.Stock,
			}
		}
		total += p.Price * it.Quantity
	}

	// 3. 支付校验，此时还没有任何持久化变更
	if in.PaymentMethod != "" {
		gw, err := s.newGateway(in.PaymentMethod)
		if err != nil {
			return nil, err
		}
		ok, err := gw.ProcessPayment(ctx, total, in.PaymentToken)
		if err != nil {
			GetMonitor().RecordPaymentError()
			return nil, err
		}
		if !ok {
			return nil, &domain.PaymentDeclinedError{Provider: in.PaymentMethod}
		}
	}

	// 4-5. 事务内创建订单和明细并扣减库存。
	// 扣减用带库存下限条件的原子 UPDATE，并发下单不会超卖。
	var created order.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created = order.Order{
			UserID: in.UserID,
			Status: order.StatusConfirmed,
			Total:  total,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for _, it := range in.Items {
			// 事务内重读单价做快照
			var p product.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &domain.NotFoundError{Entity: "product", ID: it.ProductID}
				}
				return err
			}

			line := orderline.OrderLine{
				OrderID:   created.ID,
				ProductID: p.ID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
				Subtotal:  p.Price * it.Quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}

			res := tx.Model(&product.Product{}).
				Where("id = ? AND stock >= ?", it.ProductID, it.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// 预检之后有并发请求消耗了库存，整单回滚
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   it.Quantity,
					Available:   p.Stock,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. 提交之后再通知，通知失败不影响下单结果
	s.dispatcher.Notify(notify.EventOrderCreated, notify.Payload{
		"order_id":   created.ID,
		"user_email": u.Email,
		"total":      created.Total,
	})

	zap.L().Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("user_id", in.UserID),
		zap.Int64("total", created.Total))
	return &created, nil
}

// CancelOrder 取消订单：回补库存并把状态置为 cancelled。
// 只有 pending/confirmed 状态允许取消，重复取消会被拒绝。
func (s *OrderProcessService) CancelOrder(ctx context.Context, orderID int64) error {
	var o order.Order
	if err := s.db.WithContext(ctx).First(&o, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Entity: "order", ID: orderID}
		}
		return err
	}
	if !o.Status.Cancellable() {
		return &domain.InvalidStateTransitionError{
			From: string(o.Status),
			To:   string(order.StatusCancelled),
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 状态守卫放在 UPDATE 条件里，并发双重取消不会重复回补库存
		res := tx.Model(&order.Order{}).
			Where("id = ? AND status IN ?", orderID,
				[]order.Status{order.StatusPending, order.StatusConfirmed}).
			Update("status", order.StatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.InvalidStateTransitionError{
				From: string(o.Status),
				To:   string(order.StatusCancelled),
			}
		}

		var lines []*orderline.OrderLine
		if err := tx.Where("order_id = ?", orderID).Find(&lines).Error; err != nil {
			return err
		}
		for _, l := range lines {
			if err := tx.Model(&product.Product{}).
				Where("id = ?", l.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", l.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatcher.Notify(notify.EventOrderCancelled, notify.Payload{
		"order_id": orderID,
	})

	zap.L().Info("order cancelled", zap.Int64("order_id", orderID))
	return nil
}

package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/goshop/internal/datamodels/orderline"
)

type orderLineRepo struct {
	db *gorm.DB
}

// NewOrderLineRepository 创建订单明细仓储
func NewOrderLineRepository(db *gorm.DB) orderline.Repository {
	return &orderLineRepo{db: db}
}

func (r *orderLineRepo) Create(ctx context.Context, l *orderline.OrderLine) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *orderLineRepo) GetByID(ctx context.Context, id int64) (*orderline.OrderLine, error) {
	var l orderline.OrderLine
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *orderLineRepo) ListByOrder(ctx context.Context, orderID int64) ([]*orderline.OrderLine, error) {
	var list []*orderline.OrderLine
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderLineRepo) Update(ctx context.Context, l *orderline.OrderLine) error {
	return r.db.WithContext(ctx).Save(l).Error
}

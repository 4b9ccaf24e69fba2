package orderline

import (
	"context"
	"time"
)

// OrderLine 订单明细，单价在下单时快照，Subtotal = Quantity * UnitPrice
type OrderLine struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	OrderID   int64     `gorm:"index;not null" json:"order_id"`
	ProductID int64     `gorm:"index;not null" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"` // 分
	Subtotal  int64     `gorm:"not null" json:"subtotal"`   // 分
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository 订单明细仓储接口
type Repository interface {
	Create(ctx context.Context, l *OrderLine) error
	GetByID(ctx context.Context, id int64) (*OrderLine, error)
	ListByOrder(ctx context.Context, orderID int64) ([]*OrderLine, error)
	Update(ctx context.Context, l *OrderLine) error
}

package order

import (
	"context"
	"time"
)

// Status 订单状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Cancellable 该状态下是否允许取消
// shipped/delivered 属于履约阶段，cancelled 不允许重复取消。
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Order 订单模型，Total 创建后不可变
type Order struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Status    Status    `gorm:"size:16;index;not null" json:"status"`
	Total     int64     `gorm:"not null" json:"total"` // 分
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/goshop/internal/datamodels/product"
	"github.com/example/goshop/internal/domain"
	"github.com/example/goshop/internal/pricing"
)

// PricingService 报价服务：按商品当前单价和所选策略计算金额
type PricingService struct {
	productRepo product.Repository
}

func NewPricingService(productRepo product.Repository) *PricingService {
	return &PricingService{productRepo: productRepo}
}

// Quote 计算 quantity 件商品在指定策略下的金额（分）
func (s *PricingService) Quote(ctx context.Context, productID, quantity int64, strategyKind string) (int64, error) {
	if quantity <= 0 {
		return 0, &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	strategy, err := pricing.New(strategyKind)
	if err != nil {
		return 0, err
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &domain.NotFoundError{Entity: "product", ID: productID}
		}
		return 0, err
	}

	return pricing.NewContext(strategy).CalculatePrice(p.Price, quantity), nil
}

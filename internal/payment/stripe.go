package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/goshop/internal/domain"
)

// 模拟网关的特殊 token 前缀，便于联调和测试
const (
	tokenDeclinedPrefix = "declined"
	tokenTimeoutPrefix  = "timeout"
)

var errGatewayTimeout = errors.New("gateway timeout")

// stripeChargeRequest Stripe 原生请求结构（金额单位为分）
type stripeChargeRequest struct {
	Amount   int64
	Currency string
	Source   string
}

type stripeChargeResult struct {
	ID     string
	Paid   bool
	Status string
}

// stripeClient 模拟的 Stripe 客户端
type stripeClient struct{}

func (c *stripeClient) Charge(ctx context.Context, req stripeChargeRequest) (*stripeChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(req.Source, tokenTimeoutPrefix) {
		return nil, errGatewayTimeout
	}
	if strings.HasPrefix(req.Source, tokenDeclinedPrefix) {
		return &stripeChargeResult{ID: "", Paid: false, Status: "card_declined"}, nil
	}
	return &stripeChargeResult{
		ID:     "ch_" + uuid.NewString(),
		Paid:   true,
		Status: "succeeded",
	}, nil
}

// StripeAdapter 将统一支付请求转换为 Stripe 的调用形态
type StripeAdapter struct {
	client *stripeClient
}

// NewStripeAdapter 创建 Stripe 适配器
func NewStripeAdapter() *StripeAdapter {
	return &StripeAdapter{client: &stripeClient{}}
}

func (a *StripeAdapter) Provider() string { return ProviderStripe }

func (a *StripeAdapter) ProcessPayment(ctx context.Context, amount int64, token string) (bool, error) {
	result, err := a.client.Charge(ctx, stripeChargeRequest{
		Amount:   amount, // Stripe 以分计价，内部金额本身就是分
		Currency: "usd",
		Source:   token,
	})
	if err != nil {
		return false, &domain.PaymentGatewayError{Provider: ProviderStripe, Err: err}
	}
	if !result.Paid {
		zap.L().Info("stripe charge declined",
			zap.Int64("amount", amount),
			zap.String("status", result.Status))
		return false, nil
	}
	zap.L().Info("stripe charge succeeded",
		zap.Int64("amount", amount),
		zap.String("transaction_id", result.ID))
	return true, nil
}

package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/goshop/internal/domain"
)

// paypalTransaction PayPal 原生请求结构（金额为十进制字符串）
type paypalTransaction struct {
	Total        string
	CurrencyCode string
	Method       string
}

type paypalResult struct {
	TransactionID string
	State         string // approved / failed
}

// paypalClient 模拟的 PayPal 客户端
type paypalClient struct{}

func (c *paypalClient) ProcessTransaction(ctx context.Context, tx paypalTransaction) (*paypalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(tx.Method, tokenTimeoutPrefix) {
		return nil, errGatewayTimeout
	}
	if strings.HasPrefix(tx.Method, tokenDeclinedPrefix) {
		return &paypalResult{State: "failed"}, nil
	}
	return &paypalResult{
		TransactionID: "PAY-" + uuid.NewString(),
		State:         "approved",
	}, nil
}

// PayPalAdapter 将统一支付请求转换为 PayPal 的调用形态
type PayPalAdapter struct {
	client *paypalClient
}

// NewPayPalAdapter 创建 PayPal 适配器
func NewPayPalAdapter() *PayPalAdapter {
	return &PayPalAdapter{client: &paypalClient{}}
}

func (a *PayPalAdapter) Provider() string { return ProviderPayPal }

func (a *PayPalAdapter) ProcessPayment(ctx context.Context, amount int64, token string) (bool, error) {
	result, err := a.client.ProcessTransaction(ctx, paypalTransaction{
		// PayPal 以元为单位的十进制字符串
		Total:        fmt.Sprintf("%d.%02d", amount/100, amount%100),
		CurrencyCode: "USD",
		Method:       token,
	})
	if err != nil {
		return false, &domain.PaymentGatewayError{Provider: ProviderPayPal, Err: err}
	}
	if result.State != "approved" {
		zap.L().Info("paypal transaction declined",
			zap.Int64("amount", amount),
			zap.String("state", result.State))
		return false, nil
	}
	zap.L().Info("paypal transaction approved",
		zap.Int64("amount", amount),
		zap.String("transaction_id", result.TransactionID))
	return true, nil
}

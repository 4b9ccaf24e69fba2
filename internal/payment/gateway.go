package payment

import (
	"context"

	"github.com/example/goshop/internal/domain"
)

// Gateway 统一支付接口：返回 true 表示支付通过，false 表示被拒绝；
// error 非空表示调用本身没有完成（网络/超时），与拒绝支付严格区分。
type Gateway interface {
	Provider() string
	ProcessPayment(ctx context.Context, amount int64, token string) (bool, error)
}

// 渠道标识
const (
	ProviderStripe = "stripe"
	ProviderPayPal = "paypal"
)

var registry = map[string]func() Gateway{
	ProviderStripe: func() Gateway { return NewStripeAdapter() },
	ProviderPayPal: func() Gateway { return NewPayPalAdapter() },
}

// New 按渠道标识构造适配器，未注册的渠道返回 UnsupportedProviderError
func New(provider string) (Gateway, error) {
	ctor, ok := registry[provider]
	if !ok {
		return nil, &domain.UnsupportedProviderError{Provider: provider}
	}
	return ctor(), nil
}

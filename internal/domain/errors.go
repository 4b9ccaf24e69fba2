package domain

import "fmt"

// NotFoundError 实体不存在（user/product/order 等）
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s not found: id=%d", e.Entity, e.ID)
	}
	return e.Entity + " not found"
}

// InsufficientStockError 库存不足
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("库存不足: %s (id=%d) 需要 %d 剩余 %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// PaymentDeclinedError 支付被拒绝（网关成功响应但未通过）
type PaymentDeclinedError struct {
	Provider string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined by %s", e.Provider)
}

// PaymentGatewayError 支付调用本身失败（网络/超时等瞬时故障），与拒绝支付区分
type PaymentGatewayError struct {
	Provider string
	Err      error
}

func (e *PaymentGatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s unavailable: %v", e.Provider, e.Err)
}

func (e *PaymentGatewayError) Unwrap() error { return e.Err }

// UnsupportedProviderError 不支持的支付渠道标识
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return "unsupported payment provider: " + e.Provider
}

// UnsupportedStrategyError 不支持的定价策略标识
type UnsupportedStrategyError struct {
	Kind string
}

func (e *UnsupportedStrategyError) Error() string {
	return "unsupported pricing strategy: " + e.Kind
}

// IncompleteReportError 报表缺少必填字段
type IncompleteReportError struct {
	Reason string
}

func (e *IncompleteReportError) Error() string {
	return "incomplete report: " + e.Reason
}

// InvalidStateTransitionError 订单状态不允许该操作
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid order state transition: %s -> %s", e.From, e.To)
}

// ValidationError 请求参数校验失败
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

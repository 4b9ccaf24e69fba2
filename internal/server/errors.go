package server

import (
	"errors"

	"github.com/kataras/iris/v12"

	"github.com/example/goshop/internal/domain"
)

// httpStatus 把领域错误映射为 HTTP 状态码：
// 不存在 -> 404，业务校验/库存/支付拒绝 -> 400，网关故障和未知错误 -> 500。
func httpStatus(err error) int {
	var (
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientStockError
		declined     *domain.PaymentDeclinedError
		badProvider  *domain.UnsupportedProviderError
		badStrategy  *domain.UnsupportedStrategyError
		incomplete   *domain.IncompleteReportError
		invalidState *domain.InvalidStateTransitionError
		validation   *domain.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return iris.StatusNotFound
	case errors.As(err, &insufficient),
		errors.As(err, &declined),
		errors.As(err, &badProvider),
		errors.As(err, &badStrategy),
		errors.As(err, &incomplete),
		errors.As(err, &invalidState),
		errors.As(err, &validation):
		return iris.StatusBadRequest
	default:
		return iris.StatusInternalServerError
	}
}

// fail 按统一 JSON 信封返回错误
func fail(ctx iris.Context, err error) {
	status := httpStatus(err)
	ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
}

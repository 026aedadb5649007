package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrEmptyCart 购物车为空,无法结算
	ErrEmptyCart = apperrors.ErrEmptyCart

	// ErrInvalidOrderItems 订单明细不能为空(账本不创建零条目订单)
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidStatus 非法的订单状态取值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的订单状态")
)

package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// UpdateOrderStatusUseCase 更新订单状态用例(员工操作)
// 状态间自由设置,不做流转限制:cancelled改回paid也是合法操作,
// 系统只负责记录员工的显式决定
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
}

// NewUpdateOrderStatusUseCase 创建更新订单状态用例
func NewUpdateOrderStatusUseCase(orderRepo order.Repository) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{orderRepo: orderRepo}
}

// UpdateOrderStatusRequest 更新订单状态请求DTO
type UpdateOrderStatusRequest struct {
	OrderID uint
	Status  string
}

// Execute 执行状态更新
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req UpdateOrderStatusRequest) error {
	status := order.Status(req.Status)
	if !status.Valid() {
		return order.ErrInvalidStatus
	}
	return uc.orderRepo.UpdateStatus(ctx, req.OrderID, status)
}

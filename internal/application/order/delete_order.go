package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// DeleteOrderUseCase 删除订单用例(员工操作)
// 明细行随订单级联删除;已扣减的库存不回补(取消售卖用改状态,删除是纠错手段)
type DeleteOrderUseCase struct {
	orderRepo order.Repository
}

// NewDeleteOrderUseCase 创建删除订单用例
func NewDeleteOrderUseCase(orderRepo order.Repository) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{orderRepo: orderRepo}
}

// Execute 执行订单删除
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, orderID uint) error {
	return uc.orderRepo.Delete(ctx, orderID)
}

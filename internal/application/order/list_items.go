package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/party"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// ListOrderItemsUseCase 订单明细查询用例
type ListOrderItemsUseCase struct {
	orderRepo  order.Repository
	clientRepo party.ClientRepository
}

// NewListOrderItemsUseCase 创建订单明细查询用例
func NewListOrderItemsUseCase(orderRepo order.Repository, clientRepo party.ClientRepository) *ListOrderItemsUseCase {
	return &ListOrderItemsUseCase{orderRepo: orderRepo, clientRepo: clientRepo}
}

// ListOrderItemsRequest 订单明细请求DTO
type ListOrderItemsRequest struct {
	OrderID uint
	// UserID 非nil时做归属校验:订单不属于该用户时按不存在处理
	// (client角色只能看自己的订单明细,且不暴露他人订单是否存在)
	UserID *uint
}

// OrderItemDTO 订单明细DTO
type OrderItemDTO struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// Execute 执行订单明细查询
func (uc *ListOrderItemsUseCase) Execute(ctx context.Context, req ListOrderItemsRequest) ([]*OrderItemDTO, error) {
	if req.UserID != nil {
		o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return nil, err
		}
		client, err := uc.clientRepo.FindByUserID(ctx, *req.UserID)
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeClientNotFound) {
				// 从未下过单的用户没有档案,自然也没有可看的订单
				return nil, order.ErrOrderNotFound
			}
			return nil, err
		}
		if o.ClientID != client.ID {
			return nil, order.ErrOrderNotFound
		}
	}

	items, err := uc.orderRepo.ListItems(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*OrderItemDTO, len(items))
	for i, item := range items {
		dtos[i] = &OrderItemDTO{
			ID:       item.ID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Price * float64(item.Quantity),
		}
	}
	return dtos, nil
}

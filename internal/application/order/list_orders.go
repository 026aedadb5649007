package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// ListOrdersUseCase 订单列表用例
// 员工看全部订单,client角色只能看自己的(由handler按角色决定是否传UserID)
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 订单列表请求DTO
type ListOrdersRequest struct {
	UserID   *uint // 非nil时只返回该用户的订单
	Page     int
	PageSize int
}

// OrderSummaryDTO 订单摘要DTO
type OrderSummaryDTO struct {
	ID         uint    `json:"id"`
	ClientID   uint    `json:"client_id"`
	ClientName string  `json:"client_name"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
	CreatedAt  string  `json:"created_at"`
}

// Execute 执行订单列表查询
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) ([]*OrderSummaryDTO, int64, error) {
	summaries, total, err := uc.orderRepo.ListSummaries(ctx, order.ListParams{
		UserID:   req.UserID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*OrderSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = &OrderSummaryDTO{
			ID:         s.ID,
			ClientID:   s.ClientID,
			ClientName: s.ClientName,
			Status:     s.Status.String(),
			Total:      s.Total,
			CreatedAt:  s.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return dtos, total, nil
}

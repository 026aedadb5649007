package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/party"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// CreateOrderUseCase 员工代客下单用例
// 与结算路径的区别:
// 1. 客户由员工显式指定(clientID),不经过档案自动解析
// 2. 价格由员工给定(线下成交价可能与目录价不同),原样入账
// 3. 不校验库存,允许扣成负数(负库存表示欠货,到货后补发)
// 4. 初始状态可由员工指定(默认new)
type CreateOrderUseCase struct {
	orderRepo  order.Repository
	bookRepo   book.Repository
	clientRepo party.ClientRepository
	txManager  order.TxManager
	events     EventPublisher
}

// NewCreateOrderUseCase 创建员工下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	clientRepo party.ClientRepository,
	txManager order.TxManager,
	events EventPublisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:  orderRepo,
		bookRepo:   bookRepo,
		clientRepo: clientRepo,
		txManager:  txManager,
		events:     events,
	}
}

// CreateOrderRequest 员工下单请求DTO
type CreateOrderRequest struct {
	ClientID uint              // 下单客户ID
	Status   string            // 初始状态(空串取默认new)
	Items    []CreateOrderItem // 订单明细
}

// CreateOrderItem 订单明细项,价格为员工给定的成交价
type CreateOrderItem struct {
	BookID   uint
	Quantity int
	Price    float64
}

// CreateOrderResponse 员工下单响应DTO
type CreateOrderResponse struct {
	OrderID   uint    `json:"order_id"`
	ClientID  uint    `json:"client_id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

// Execute 执行员工下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	// 1. 参数校验
	if len(req.Items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}
	status := order.Status(req.Status)
	if req.Status != "" && !status.Valid() {
		return nil, order.ErrInvalidStatus
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
		}
	}

	// 2. 客户必须存在
	if _, err := uc.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	// 3. 图书必须存在;成交价按员工给定值入账,之后目录调价不影响这单
	items := make([]order.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if _, err := uc.bookRepo.FindByID(ctx, item.BookID); err != nil {
			return nil, err
		}
		items[i] = order.OrderItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	// 4. 事务:落库+无保护扣库存(允许负数)
	newOrder := order.NewOrder(req.ClientID, status, items)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}
		for _, item := range newOrder.Items {
			if err := uc.bookRepo.DecrementStockUnchecked(txCtx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.PublishOrderCreated(ctx, newOrderCreatedEvent(newOrder, "staff"))

	return &CreateOrderResponse{
		OrderID:   newOrder.ID,
		ClientID:  newOrder.ClientID,
		Status:    newOrder.Status.String(),
		Total:     newOrder.Total(),
		CreatedAt: newOrder.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

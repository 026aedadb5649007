package order

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/party"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// CheckoutUseCase 购物车结算用例
// 这是整个系统最核心的用例:
// 把会话购物车一次性转换成订单,同时扣减库存
type CheckoutUseCase struct {
	orderRepo    order.Repository
	bookRepo     book.Repository
	cartStore    cart.Store
	partyService party.Service
	txManager    order.TxManager
	events       EventPublisher
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	cartStore cart.Store,
	partyService party.Service,
	txManager order.TxManager,
	events EventPublisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo:    orderRepo,
		bookRepo:     bookRepo,
		cartStore:    cartStore,
		partyService: partyService,
		txManager:    txManager,
		events:       events,
	}
}

// CheckoutRequest 结算请求DTO
type CheckoutRequest struct {
	UserID    uint   // 当前登录用户ID(从JWT提取)
	Login     string // 登录名(首次结算自动建档时作为默认姓名)
	SessionID string // 会话ID(定位购物车)
}

// CheckoutResponse 结算响应DTO
type CheckoutResponse struct {
	OrderID   uint    `json:"order_id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
	CreatedAt string  `json:"created_at"`
}

// Execute 执行结算
// 流程:
//  1. 取出会话购物车,空车直接拒绝
//  2. 解析客户档案(没有则按登录名自动建档,幂等)
//  3. 预检:逐条重查图书,确认仍存在且库存足够
//     (购物车里的是快照,书可能已被删或被别人买光)
//  4. 事务:创建订单 + 带保护的原子扣库存
//     预检到提交之间仍有并发窗口,最终一致性由扣减语句的
//     quantity - ? >= 0保护,竞争失败的请求在这里回滚
//  5. 提交成功后清空购物车、发布事件
//
// 订单明细用购物车里的快照价,结算前的目录改价不影响车内条目
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	tracer := otel.Tracer("bookshop")
	ctx, span := tracer.Start(ctx, "order.checkout")
	defer span.End()
	span.SetAttributes(attribute.Int("user.id", int(req.UserID)))

	// 1. 取购物车
	c, err := uc.cartStore.Load(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, order.ErrEmptyCart
	}

	// 2. 解析客户档案
	client, err := uc.partyService.FindOrCreateClientForUser(ctx, req.UserID, req.Login)
	if err != nil {
		return nil, err
	}

	// 3. 预检(事务外,尽早给出友好错误,不白占行锁)
	for _, entry := range c.Entries {
		b, err := uc.bookRepo.FindByID(ctx, entry.BookID)
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeBookNotFound) {
				return nil, apperrors.Newf(apperrors.ErrCodeBookNotFound,
					"《%s》已下架,请先从购物车移除", entry.Title)
			}
			return nil, err
		}
		if !b.CanSupply(entry.Quantity) {
			return nil, apperrors.Newf(apperrors.ErrCodeInsufficientStock,
				"《%s》库存不足,当前仅有%d本", b.Title, b.Quantity)
		}
	}

	// 4. 组装订单(快照价)并在事务内落库+扣库存
	items := make([]order.OrderItem, len(c.Entries))
	for i, entry := range c.Entries {
		items[i] = order.OrderItem{
			BookID:   entry.BookID,
			Quantity: entry.Quantity,
			Price:    entry.Price,
		}
	}
	newOrder := order.NewOrder(client.ID, order.StatusNew, items)

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}
		for _, item := range newOrder.Items {
			if err := uc.bookRepo.DecrementStock(txCtx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "结算失败")
		return nil, err
	}

	// 5. 清空购物车
	// 失败只记录在span上,不影响已提交的订单(下次结算会拦在预检)
	if err := uc.cartStore.Clear(ctx, req.SessionID); err != nil {
		span.RecordError(err)
	}

	uc.events.PublishOrderCreated(ctx, newOrderCreatedEvent(newOrder, "checkout"))

	span.SetAttributes(attribute.Int("order.id", int(newOrder.ID)))
	span.SetStatus(codes.Ok, "")

	return &CheckoutResponse{
		OrderID:   newOrder.ID,
		Status:    newOrder.Status.String(),
		Total:     newOrder.Total(),
		ItemCount: len(newOrder.Items),
		CreatedAt: newOrder.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

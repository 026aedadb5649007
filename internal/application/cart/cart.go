package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// CartUseCase 购物车用例(client角色专用)
// 查看/加购/移除都是同一组依赖上的小操作,合并成一个用例
// 购物车按会话隔离,同一会话内请求串行,读改写不加锁
type CartUseCase struct {
	cartStore cart.Store
	bookRepo  book.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartStore cart.Store, bookRepo book.Repository) *CartUseCase {
	return &CartUseCase{cartStore: cartStore, bookRepo: bookRepo}
}

// EntryDTO 购物车条目DTO
type EntryDTO struct {
	BookID   uint    `json:"book_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartDTO 购物车DTO
type CartDTO struct {
	Entries []EntryDTO `json:"entries"`
	Total   float64    `json:"total"`
}

func toCartDTO(c *cart.Cart) *CartDTO {
	entries := make([]EntryDTO, len(c.Entries))
	for i, e := range c.Entries {
		entries[i] = EntryDTO{
			BookID:   e.BookID,
			Title:    e.Title,
			Price:    e.Price,
			Quantity: e.Quantity,
			Subtotal: e.Price * float64(e.Quantity),
		}
	}
	return &CartDTO{Entries: entries, Total: c.Total()}
}

// View 查看当前会话的购物车
func (uc *CartUseCase) View(ctx context.Context, sessionID string) (*CartDTO, error) {
	c, err := uc.cartStore.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toCartDTO(c), nil
}

// AddRequest 加购请求DTO
type AddRequest struct {
	SessionID string
	BookID    uint
	Quantity  int // <1时按1处理
}

// Add 加购
// 取图书当前信息作快照,车内数量与在库数量的校验在Cart.Add里
func (uc *CartUseCase) Add(ctx context.Context, req AddRequest) (*CartDTO, error) {
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	c, err := uc.cartStore.Load(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if err := c.Add(b, req.Quantity); err != nil {
		return nil, err
	}

	if err := uc.cartStore.Save(ctx, req.SessionID, c); err != nil {
		return nil, err
	}
	return toCartDTO(c), nil
}

// Remove 移除条目(幂等,条目不存在也返回成功)
func (uc *CartUseCase) Remove(ctx context.Context, sessionID string, bookID uint) (*CartDTO, error) {
	c, err := uc.cartStore.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Remove(bookID)

	if err := uc.cartStore.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return toCartDTO(c), nil
}

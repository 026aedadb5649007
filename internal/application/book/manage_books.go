package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// ManageBooksUseCase 图书目录维护用例(员工操作)
type ManageBooksUseCase struct {
	bookRepo book.Repository
}

// NewManageBooksUseCase 创建图书维护用例
func NewManageBooksUseCase(bookRepo book.Repository) *ManageBooksUseCase {
	return &ManageBooksUseCase{bookRepo: bookRepo}
}

// BookInput 图书写入DTO(创建与整体更新共用)
type BookInput struct {
	Title    string
	Author   string
	Price    float64
	Quantity int
}

// Create 录入新书
func (uc *ManageBooksUseCase) Create(ctx context.Context, input BookInput) (*BookDTO, error) {
	b := book.NewBook(input.Title, input.Author, input.Price, input.Quantity)
	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBookDTO(b), nil
}

// Get 查看单本图书
func (uc *ManageBooksUseCase) Get(ctx context.Context, id uint) (*BookDTO, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookDTO(b), nil
}

// Update 整体覆盖更新
// Quantity直接覆盖是目录维护语义(盘点校正),与下单路径的原子扣减互不相干
func (uc *ManageBooksUseCase) Update(ctx context.Context, id uint, input BookInput) (*BookDTO, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Overwrite(input.Title, input.Author, input.Price, input.Quantity)
	if err := uc.bookRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBookDTO(b), nil
}

// Delete 删除图书
// 引用它的历史订单明细行被级联删除,历史订单的金额汇总随之变小,
// 这是沿用的既定行为
func (uc *ManageBooksUseCase) Delete(ctx context.Context, id uint) error {
	return uc.bookRepo.Delete(ctx, id)
}

package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// BookDTO 图书DTO
type BookDTO struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func toBookDTO(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Quantity: b.Quantity,
	}
}

// SearchBooksUseCase 图书检索用例
// 目录对所有已登录角色开放,keyword为空时即全量浏览
type SearchBooksUseCase struct {
	bookRepo book.Repository
}

// NewSearchBooksUseCase 创建图书检索用例
func NewSearchBooksUseCase(bookRepo book.Repository) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookRepo: bookRepo}
}

// SearchBooksRequest 检索请求DTO
type SearchBooksRequest struct {
	Keyword  string
	Page     int
	PageSize int
}

// Execute 执行检索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) ([]*BookDTO, int64, error) {
	books, total, err := uc.bookRepo.Search(ctx, book.SearchParams{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*BookDTO, len(books))
	for i, b := range books {
		dtos[i] = toBookDTO(b)
	}
	return dtos, total, nil
}

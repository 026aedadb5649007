package dto

// BookRequest 图书写入请求(创建与整体更新共用)
// quantity允许为0(售罄不等于下架)
type BookRequest struct {
	Title    string  `json:"title" binding:"required,max=200"`
	Author   string  `json:"author" binding:"max=100"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int     `json:"quantity" binding:"gte=0"`
}

// BookResponse 图书响应
type BookResponse struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// SearchBooksQuery 图书检索查询参数
type SearchBooksQuery struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Normalize 夹取分页参数(同PageQuery.Normalize)
func (q *SearchBooksQuery) Normalize() {
	pq := PageQuery{Page: q.Page, PageSize: q.PageSize}
	pq.Normalize()
	q.Page, q.PageSize = pq.Page, pq.PageSize
}

package dto

// AddToCartRequest 加购请求
// quantity缺省或小于1时按1处理(校验放业务层,不在binding里卡)
type AddToCartRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// CartEntryResponse 购物车条目响应
type CartEntryResponse struct {
	BookID   uint    `json:"book_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartResponse 购物车响应
type CartResponse struct {
	Entries []CartEntryResponse `json:"entries"`
	Total   float64             `json:"total"`
}

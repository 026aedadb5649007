package dto

// CreateOrderRequest 员工代客下单请求
type CreateOrderRequest struct {
	ClientID uint                   `json:"client_id" binding:"required"`
	Status   string                 `json:"status" binding:"omitempty,oneof=new paid shipped cancelled"`
	Items    []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemInput 下单明细项,价格由员工给定(成交价,不取目录价)
type CreateOrderItemInput struct {
	BookID   uint    `json:"book_id" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new paid shipped cancelled"`
}

// OrderSummaryResponse 订单摘要响应
type OrderSummaryResponse struct {
	ID         uint    `json:"id"`
	ClientID   uint    `json:"client_id"`
	ClientName string  `json:"client_name"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
	CreatedAt  string  `json:"created_at"`
}

// OrderItemResponse 订单明细响应
type OrderItemResponse struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// CheckoutResponse 结算响应
type CheckoutResponse struct {
	OrderID   uint    `json:"order_id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
	CreatedAt string  `json:"created_at"`
}

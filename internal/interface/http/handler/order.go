package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase     *apporder.CheckoutUseCase
	createOrderUseCase  *apporder.CreateOrderUseCase
	listOrdersUseCase   *apporder.ListOrdersUseCase
	listItemsUseCase    *apporder.ListOrderItemsUseCase
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase
	deleteOrderUseCase  *apporder.DeleteOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *apporder.CheckoutUseCase,
	createOrderUseCase *apporder.CreateOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	listItemsUseCase *apporder.ListOrderItemsUseCase,
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase,
	deleteOrderUseCase *apporder.DeleteOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase:     checkoutUseCase,
		createOrderUseCase:  createOrderUseCase,
		listOrdersUseCase:   listOrdersUseCase,
		listItemsUseCase:    listItemsUseCase,
		updateStatusUseCase: updateStatusUseCase,
		deleteOrderUseCase:  deleteOrderUseCase,
	}
}

// Checkout 购物车结算(client角色)
// @Summary      结算购物车
// @Description  把当前会话购物车转成订单并扣减库存,成功后清空购物车
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CheckoutResponse} "结算成功"
// @Router       /api/v1/orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	start := time.Now()
	metrics.IncGauge(metrics.OrdersInProgress)
	defer metrics.DecGauge(metrics.OrdersInProgress)

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apporder.CheckoutRequest{
		UserID:    middleware.GetUserID(c),
		Login:     middleware.GetLogin(c),
		SessionID: middleware.GetSessionID(c),
	})
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		response.Error(c, err)
		return
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())

	response.Success(c, &dto.CheckoutResponse{
		OrderID:   result.OrderID,
		Status:    result.Status,
		Total:     result.Total,
		ItemCount: result.ItemCount,
		CreatedAt: result.CreatedAt,
	})
}

// Create 员工代客下单
// @Summary      创建订单
// @Description  员工替指定客户下单,不校验库存(允许欠货)
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      200 {object} response.Response{data=apporder.CreateOrderResponse} "创建成功"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	start := time.Now()
	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.CreateOrderItem{BookID: item.BookID, Quantity: item.Quantity, Price: item.Price}
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		ClientID: req.ClientID,
		Status:   req.Status,
		Items:    items,
	})
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		response.Error(c, err)
		return
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())

	response.Success(c, result)
}

// List 订单列表
// @Summary      订单列表
// @Description  员工看全部订单,client只看自己的
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	query.Normalize()

	orders, total, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID:   h.scopeUserID(c),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.OrderSummaryResponse, len(orders))
	for i, o := range orders {
		list[i] = &dto.OrderSummaryResponse{
			ID:         o.ID,
			ClientID:   o.ClientID,
			ClientName: o.ClientName,
			Status:     o.Status,
			Total:      o.Total,
			CreatedAt:  o.CreatedAt,
		}
	}
	response.SuccessWithPage(c, list, total, query.Page, query.PageSize)
}

// Items 订单明细
// @Summary      订单明细
// @Description  client只能看自己订单的明细,他人订单按不存在处理
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=[]dto.OrderItemResponse} "查询成功"
// @Router       /api/v1/orders/{id}/items [get]
func (h *OrderHandler) Items(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	items, err := h.listItemsUseCase.Execute(c.Request.Context(), apporder.ListOrderItemsRequest{
		OrderID: id,
		UserID:  h.scopeUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.OrderItemResponse, len(items))
	for i, item := range items {
		list[i] = &dto.OrderItemResponse{
			ID:       item.ID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal,
		}
	}
	response.Success(c, list)
}

// UpdateStatus 更新订单状态(员工操作)
// @Summary      更新订单状态
// @Description  状态间自由设置,不做流转限制
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "状态"
// @Success      200 {object} response.Response "更新成功"
// @Router       /api/v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateOrderStatusRequest{
		OrderID: id,
		Status:  req.Status,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// Delete 删除订单(员工操作)
// @Summary      删除订单
// @Description  明细级联删除,已扣减的库存不回补
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.deleteOrderUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// scopeUserID client角色返回自己的用户ID(限定可见范围),员工返回nil(看全部)
func (h *OrderHandler) scopeUserID(c *gin.Context) *uint {
	if user.Role(middleware.GetRole(c)) == user.RoleClient {
		uid := middleware.GetUserID(c)
		return &uid
	}
	return nil
}

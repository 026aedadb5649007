package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器(client角色专用)
// 购物车按登录会话隔离,会话ID从Claims取,URL里不出现
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// View 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartResponse} "查询成功"
// @Router       /api/v1/cart [get]
func (h *CartHandler) View(c *gin.Context) {
	result, err := h.cartUseCase.View(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toCartResponse(result))
}

// Add 加购
// @Summary      加入购物车
// @Description  数量缺省按1,条目记录加购时的价格快照
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "加购信息"
// @Success      200 {object} response.Response{data=dto.CartResponse} "加购成功"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.cartUseCase.Add(c.Request.Context(), appcart.AddRequest{
		SessionID: middleware.GetSessionID(c),
		BookID:    req.BookID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toCartResponse(result))
}

// Remove 移除条目
// @Summary      移出购物车
// @Description  幂等操作,条目不存在也返回成功
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.CartResponse} "移除成功"
// @Router       /api/v1/cart/items/{book_id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	bookID, err := parseUintParam(c, "book_id")
	if err != nil {
		return
	}

	result, err := h.cartUseCase.Remove(c.Request.Context(), middleware.GetSessionID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toCartResponse(result))
}

func toCartResponse(result *appcart.CartDTO) *dto.CartResponse {
	entries := make([]dto.CartEntryResponse, len(result.Entries))
	for i, e := range result.Entries {
		entries[i] = dto.CartEntryResponse{
			BookID:   e.BookID,
			Title:    e.Title,
			Price:    e.Price,
			Quantity: e.Quantity,
			Subtotal: e.Subtotal,
		}
	}
	return &dto.CartResponse{Entries: entries, Total: result.Total}
}

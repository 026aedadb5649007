package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	searchUseCase *appbook.SearchBooksUseCase
	manageUseCase *appbook.ManageBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(searchUseCase *appbook.SearchBooksUseCase, manageUseCase *appbook.ManageBooksUseCase) *BookHandler {
	return &BookHandler{
		searchUseCase: searchUseCase,
		manageUseCase: manageUseCase,
	}
}

// Search 图书检索
// @Summary      图书检索
// @Description  按书名/作者模糊检索,keyword为空返回全部
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        keyword query string false "关键词"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /api/v1/books [get]
func (h *BookHandler) Search(c *gin.Context) {
	var query dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	query.Normalize()

	books, total, err := h.searchUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Keyword:  query.Keyword,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	response.SuccessWithPage(c, list, total, query.Page, query.PageSize)
}

// Get 查看单本图书
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse} "查询成功"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	b, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(b))
}

// Create 录入新书(员工操作)
// @Summary      录入图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse} "录入成功"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	b, err := h.manageUseCase.Create(c.Request.Context(), appbook.BookInput{
		Title:    req.Title,
		Author:   req.Author,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(b))
}

// Update 整体更新图书(员工操作)
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse} "更新成功"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	b, err := h.manageUseCase.Update(c.Request.Context(), id, appbook.BookInput{
		Title:    req.Title,
		Author:   req.Author,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(b))
}

// Delete 删除图书(员工操作)
// @Summary      删除图书
// @Description  物理删除,引用它的历史订单明细行一并级联删除
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

func toBookResponse(b *appbook.BookDTO) *dto.BookResponse {
	return &dto.BookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Quantity: b.Quantity,
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	appparty "github.com/xiebiao/bookshop/internal/application/party"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// ClientHandler 客户档案HTTP处理器(员工操作)
type ClientHandler struct {
	manageUseCase *appparty.ManageClientsUseCase
}

// NewClientHandler 创建客户档案处理器
func NewClientHandler(manageUseCase *appparty.ManageClientsUseCase) *ClientHandler {
	return &ClientHandler{manageUseCase: manageUseCase}
}

// List 客户档案列表
// @Summary      客户列表
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /api/v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	query.Normalize()

	clients, total, err := h.manageUseCase.List(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.ClientResponse, len(clients))
	for i, cl := range clients {
		list[i] = toClientResponse(cl)
	}
	response.SuccessWithPage(c, list, total, query.Page, query.PageSize)
}

// Get 客户档案详情
// @Summary      客户详情
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response{data=dto.ClientResponse} "查询成功"
// @Router       /api/v1/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	cl, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toClientResponse(cl))
}

// Create 手工建档
// @Summary      创建客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ClientRequest true "客户信息"
// @Success      200 {object} response.Response{data=dto.ClientResponse} "创建成功"
// @Router       /api/v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cl, err := h.manageUseCase.Create(c.Request.Context(), appparty.ClientInput{
		FullName: req.FullName,
		Contact:  req.Contact,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toClientResponse(cl))
}

// Update 更新客户档案
// @Summary      更新客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Param        request body dto.ClientRequest true "客户信息"
// @Success      200 {object} response.Response{data=dto.ClientResponse} "更新成功"
// @Router       /api/v1/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cl, err := h.manageUseCase.Update(c.Request.Context(), id, appparty.ClientInput{
		FullName: req.FullName,
		Contact:  req.Contact,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toClientResponse(cl))
}

// Delete 删除客户档案
// @Summary      删除客户
// @Description  该客户的订单连同明细一并级联删除
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
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

func toClientResponse(cl *appparty.ClientDTO) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:       cl.ID,
		FullName: cl.FullName,
		Contact:  cl.Contact,
		Notes:    cl.Notes,
		UserID:   cl.UserID,
	}
}

// EmployeeHandler 员工档案HTTP处理器(管理员操作)
type EmployeeHandler struct {
	manageUseCase *appparty.ManageEmployeesUseCase
}

// NewEmployeeHandler 创建员工档案处理器
func NewEmployeeHandler(manageUseCase *appparty.ManageEmployeesUseCase) *EmployeeHandler {
	return &EmployeeHandler{manageUseCase: manageUseCase}
}

// List 员工档案列表
// @Summary      员工列表
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /api/v1/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	query.Normalize()

	employees, total, err := h.manageUseCase.List(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.EmployeeResponse, len(employees))
	for i, e := range employees {
		list[i] = toEmployeeResponse(e)
	}
	response.SuccessWithPage(c, list, total, query.Page, query.PageSize)
}

// Get 员工档案详情
// @Summary      员工详情
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "员工ID"
// @Success      200 {object} response.Response{data=dto.EmployeeResponse} "查询成功"
// @Router       /api/v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	e, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toEmployeeResponse(e))
}

// Create 新增员工档案
// @Summary      创建员工
// @Tags         员工
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.EmployeeRequest true "员工信息"
// @Success      200 {object} response.Response{data=dto.EmployeeResponse} "创建成功"
// @Router       /api/v1/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	e, err := h.manageUseCase.Create(c.Request.Context(), appparty.EmployeeInput{
		FullName: req.FullName,
		Position: req.Position,
		Contact:  req.Contact,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toEmployeeResponse(e))
}

// Update 更新员工档案
// @Summary      更新员工
// @Tags         员工
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "员工ID"
// @Param        request body dto.EmployeeRequest true "员工信息"
// @Success      200 {object} response.Response{data=dto.EmployeeResponse} "更新成功"
// @Router       /api/v1/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	e, err := h.manageUseCase.Update(c.Request.Context(), id, appparty.EmployeeInput{
		FullName: req.FullName,
		Position: req.Position,
		Contact:  req.Contact,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toEmployeeResponse(e))
}

// Delete 删除员工档案
// @Summary      删除员工
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "员工ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
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

func toEmployeeResponse(e *appparty.EmployeeDTO) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:       e.ID,
		FullName: e.FullName,
		Position: e.Position,
		Contact:  e.Contact,
	}
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// UserHandler 用户HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
// 3. 使用依赖注入，便于测试
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
	manageUseCase   *appuser.ManageUsersUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	manageUseCase *appuser.ManageUsersUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		manageUseCase:   manageUseCase,
	}
}

// Register 自助注册
// @Summary      自助注册
// @Description  创建client角色的账号,注册后需登录获取Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Router       /api/v1/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.UserInfo{
		ID:    result.UserID,
		Login: result.Login,
		Role:  result.Role,
	})
}

// Login 登录
// @Summary      登录
// @Description  验证登录名密码,返回JWT Token对
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		User: dto.UserInfo{
			ID:    result.UserID,
			Login: result.Login,
			Role:  result.Role,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout 登出
// @Summary      登出
// @Description  吊销当前会话并丢弃购物车
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// CreateUser 管理员创建账号
// @Summary      创建账号
// @Description  管理员创建任意角色的账号
// @Tags         账号管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateUserRequest true "账号信息"
// @Success      200 {object} response.Response{data=dto.UserResponse} "创建成功"
// @Router       /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), appuser.CreateUserRequest{
		Login:    req.Login,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserResponse(result))
}

// UpdateUser 管理员更新账号
// @Summary      更新账号
// @Description  修改角色,密码留空则不重置
// @Tags         账号管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateUserRequest true "更新信息"
// @Success      200 {object} response.Response "更新成功"
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.manageUseCase.Update(c.Request.Context(), appuser.UpdateUserRequest{
		UserID:   id,
		Role:     req.Role,
		Password: req.Password,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// DeleteUser 管理员删除账号
// @Summary      删除账号
// @Description  删除账号,关联的客户档案保留
// @Tags         账号管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
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

// ListUsers 管理员查询账号列表
// @Summary      账号列表
// @Tags         账号管理
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	query.Normalize()

	users, total, err := h.manageUseCase.List(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		list[i] = toUserResponse(u)
	}
	response.SuccessWithPage(c, list, total, query.Page, query.PageSize)
}

func toUserResponse(u *appuser.UserDTO) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Login:     u.Login,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// parseIDParam 解析路径中的:id参数,失败时直接写响应
func parseIDParam(c *gin.Context) (uint, error) {
	return parseUintParam(c, "id")
}

// parseUintParam 解析任意路径参数为uint,失败时直接写响应
func parseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的ID")
		return 0, err
	}
	return uint(id), nil
}

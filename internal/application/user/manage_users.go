package user

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// UserDTO 用户信息DTO(不含密码哈希)
type UserDTO struct {
	ID        uint   `json:"id"`
	Login     string `json:"login"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID,
		Login:     u.Login,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ManageUsersUseCase 账号管理用例(管理员专用)
// 创建/修改/删除/列表都是细碎的转发,合并成一个用例,
// 不给每个动作单开文件
type ManageUsersUseCase struct {
	userService user.Service
}

// NewManageUsersUseCase 创建账号管理用例
func NewManageUsersUseCase(userService user.Service) *ManageUsersUseCase {
	return &ManageUsersUseCase{userService: userService}
}

// CreateUserRequest 创建用户请求DTO
type CreateUserRequest struct {
	Login    string
	Password string
	Role     string
}

// Create 管理员创建任意角色的账号
func (uc *ManageUsersUseCase) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := uc.userService.CreateUser(ctx, req.Login, req.Password, user.Role(req.Role))
	if err != nil {
		return nil, err
	}
	return toUserDTO(u), nil
}

// UpdateUserRequest 更新用户请求DTO
// Password为空串表示不重置密码
type UpdateUserRequest struct {
	UserID   uint
	Role     string
	Password string
}

// Update 管理员更新账号(角色必改,密码可选重置)
func (uc *ManageUsersUseCase) Update(ctx context.Context, req UpdateUserRequest) error {
	return uc.userService.UpdateUser(ctx, req.UserID, user.Role(req.Role), req.Password)
}

// Delete 管理员删除账号
// 关联的客户档案保留,仅断开user_id(外键SET NULL)
func (uc *ManageUsersUseCase) Delete(ctx context.Context, userID uint) error {
	return uc.userService.DeleteUser(ctx, userID)
}

// List 分页查询账号
func (uc *ManageUsersUseCase) List(ctx context.Context, page, pageSize int) ([]*UserDTO, int64, error) {
	users, total, err := uc.userService.ListUsers(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, total, nil
}

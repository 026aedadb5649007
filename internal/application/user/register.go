package user

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// RegisterUseCase 自助注册用例
// 注册只建账号不发Token,注册完走一次登录拿Token
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Login    string
	Password string
}

// RegisterResponse 注册响应DTO
type RegisterResponse struct {
	UserID uint   `json:"user_id"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}

// Execute 执行注册(固定client角色)
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Login, req.Password)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		UserID: u.ID,
		Login:  u.Login,
		Role:   u.Role.String(),
	}, nil
}

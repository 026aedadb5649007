package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// Sessions 会话登记接口
// 设计说明:
// 1. redis.SessionStore是生产实现,用例只依赖这两个行为
// 2. 登录时登记会话,登出时吊销;鉴权中间件另行检查吊销状态
type Sessions interface {
	SaveSession(ctx context.Context, sessionID string, userID uint, role string, ttl time.Duration) error
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
}

// LoginUseCase 登录用例
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	sessions    Sessions
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessions Sessions) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		sessions:    sessions,
	}
}

// LoginRequest 登录请求DTO
type LoginRequest struct {
	Login    string
	Password string
}

// LoginResponse 登录响应DTO
type LoginResponse struct {
	UserID       uint   `json:"user_id"`
	Login        string `json:"login"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token有效期(秒)
}

// Execute 执行登录
// 流程:
// 1. 校验登录名+密码(账号不存在与密码错误返回同一个错误)
// 2. 生成新的会话ID(uuid),每次登录都是独立会话,多端互不影响
// 3. 签发Token对,会话ID写进Claims,购物车按它隔离
// 4. Redis登记会话,TTL与Refresh Token有效期一致
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Login, req.Password)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Login, u.Role.String(), sessionID)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.SaveSession(ctx, sessionID, u.ID, u.Role.String(), uc.jwtManager.RefreshTokenExpire()); err != nil {
		return nil, err
	}

	return &LoginResponse{
		UserID:       u.ID,
		Login:        u.Login,
		Role:         u.Role.String(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(uc.jwtManager.AccessTokenExpire().Seconds()),
	}, nil
}

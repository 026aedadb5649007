package user

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	sessions   Sessions
	cartStore  cart.Store
	jwtManager *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessions Sessions, cartStore cart.Store, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{
		sessions:   sessions,
		cartStore:  cartStore,
		jwtManager: jwtManager,
	}
}

// Execute 执行登出
// 吊销当前会话并丢弃它的购物车
// 黑名单TTL取Refresh Token有效期:覆盖该会话所有未过期Token的剩余寿命
func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Revoke(ctx, sessionID, uc.jwtManager.RefreshTokenExpire()); err != nil {
		return err
	}
	return uc.cartStore.Clear(ctx, sessionID)
}

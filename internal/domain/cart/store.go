package cart

import (
	"context"
)

// Store 购物车存储接口
// 设计说明:
// 1. 购物车按会话隔离,key是登录会话ID(JWT Claims里的SessionID)
// 2. 不落主库:实现放在infrastructure/persistence/redis,
//    TTL与会话生命周期对齐,会话过期购物车一起消失
// 3. 会话间无共享,Store实现不需要额外的并发控制
type Store interface {
	// Load 取出会话的购物车;从未加购过时返回空购物车(不报错)
	Load(ctx context.Context, sessionID string) (*Cart, error)

	// Save 存回购物车(整体覆盖)
	Save(ctx context.Context, sessionID string, cart *Cart) error

	// Clear 删除会话的购物车(结算成功、登出时调用)
	Clear(ctx context.Context, sessionID string) error
}

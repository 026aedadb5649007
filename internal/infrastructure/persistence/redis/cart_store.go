package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// CartStore 购物车存储(cart.Store的Redis实现)
// 设计说明:
// 1. 购物车整体序列化成JSON存一个Key,读改写都是全量操作,
//    单个会话内请求串行,不需要更细粒度的结构
// 2. TTL与会话生命周期(Refresh Token有效期)对齐,
//    会话过期后购物车自动清理,不留垃圾数据
// 3. Key设计:cart:{session_id}
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStore 创建购物车存储
func NewCartStore(client *redis.Client, ttl time.Duration) cart.Store {
	return &CartStore{client: client, ttl: ttl}
}

// Load 取出会话的购物车
// Key不存在(从未加购或已过期)返回空购物车,调用方不必区分这两种情况
func (s *CartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	key := cartKey(sessionID)

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return cart.New(), nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "读取购物车失败")
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// 序列化格式损坏时丢弃旧数据,按空购物车处理
		return cart.New(), nil
	}
	return &c, nil
}

// Save 存回购物车(整体覆盖并续期)
func (s *CartStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return apperrors.Wrap(err, "序列化购物车失败")
	}

	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "保存购物车失败")
	}
	return nil
}

// Clear 删除会话的购物车
func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

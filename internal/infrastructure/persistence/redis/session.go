package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// SessionStore 会话存储
// 设计说明:
// 1. 会话按SessionID(JWT Claims里的uuid)隔离,同一账号可以多端登录,
//    登出只吊销当前会话,不影响其他端
// 2. 吊销走黑名单:JWT本身无状态,登出后在黑名单里记一笔,
//    鉴权中间件据此拒绝已登出的Token
// 3. Key设计:session:{session_id}、revoked:{session_id}
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 登录成功后登记会话
// TTL与Refresh Token有效期一致,过期自动清理
func (s *SessionStore) SaveSession(ctx context.Context, sessionID string, userID uint, role string, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", sessionID)

	data := map[string]interface{}{
		"user_id":  userID,
		"role":     role,
		"login_at": time.Now().Format(time.RFC3339),
	}
	if err := s.client.HMSet(ctx, key, data).Err(); err != nil {
		return apperrors.Wrap(err, "保存会话失败")
	}

	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "设置会话过期时间失败")
	}

	return nil
}

// GetSession 获取会话信息
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (map[string]string, error) {
	key := fmt.Sprintf("session:%s", sessionID)

	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取会话失败")
	}

	if len(result) == 0 {
		return nil, apperrors.ErrUnauthenticated
	}

	return result, nil
}

// Revoke 吊销会话(登出)
// 删除会话记录并写入黑名单,黑名单TTL覆盖未过期的Token剩余寿命
func (s *SessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	sessionKey := fmt.Sprintf("session:%s", sessionID)
	revokedKey := fmt.Sprintf("revoked:%s", sessionID)

	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return apperrors.Wrap(err, "删除会话失败")
	}

	if err := s.client.Set(ctx, revokedKey, "logout", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "吊销会话失败")
	}

	return nil
}

// IsRevoked 检查会话是否已吊销
// 鉴权中间件逐请求调用,外层套熔断器防Redis故障拖垮全站
func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	key := fmt.Sprintf("revoked:%s", sessionID)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查会话状态失败")
	}

	return exists > 0, nil
}

package party

import (
	"context"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Service 客户领域服务
// 设计说明:跨实体的业务逻辑放Service,单实体的放实体方法
type Service interface {
	// FindOrCreateClientForUser 按用户账号解析客户档案,没有则惰性创建
	// 结算路径专用:client角色首次结算时自动建档,姓名默认取登录名
	//
	// 幂等性要求:同一userID重复调用必须返回同一份档案,不允许产生重复行。
	// 实现依赖clients.user_id的UNIQUE索引:并发场景下第二个创建请求会撞
	// 唯一索引,此时回头重查一次即可(应用层SELECT再INSERT本身有时间窗口,
	// 唯一性只能靠数据库保证)
	FindOrCreateClientForUser(ctx context.Context, userID uint, login string) (*Client, error)
}

type service struct {
	clients ClientRepository
}

// NewService 创建客户领域服务
func NewService(clients ClientRepository) Service {
	return &service{clients: clients}
}

// FindOrCreateClientForUser 解析或创建客户档案
func (s *service) FindOrCreateClientForUser(ctx context.Context, userID uint, login string) (*Client, error) {
	// 1. 先按user_id查找
	c, err := s.clients.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeClientNotFound) {
		return nil, err
	}

	// 2. 没有档案,惰性创建最小档案
	c = NewClientForUser(userID, login)
	if err := s.clients.Create(ctx, c); err != nil {
		// 3. 撞唯一索引说明并发下已被别的请求建好,重查返回
		if apperrors.IsCode(err, apperrors.ErrCodeDuplicateEntry) {
			return s.clients.FindByUserID(ctx, userID)
		}
		return nil, err
	}

	return c, nil
}

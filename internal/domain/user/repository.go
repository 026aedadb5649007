package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 这样domain层不依赖任何外部框架（GORM、sqlx等）
// 4. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 注意：登录名已存在时应返回ErrLoginDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByLogin 根据登录名查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByLogin(ctx context.Context, login string) (*User, error)

	// Update 更新用户（角色/密码哈希）
	Update(ctx context.Context, user *User) error

	// Delete 删除用户
	// 注意：关联Client的user_id由外键置NULL（数据库级联）
	Delete(ctx context.Context, id uint) error

	// List 分页查询用户列表
	List(ctx context.Context, page, pageSize int) ([]*User, int64, error)
}

package party

import (
	"context"
)

// ClientRepository 客户仓储接口
// 设计说明:由domain层定义接口,infrastructure层实现(依赖倒置)
type ClientRepository interface {
	// Create 创建客户档案
	// 注意:UserID非空且已被占用时返回ErrClientUserDuplicate
	Create(ctx context.Context, client *Client) error

	// FindByID 根据ID查找客户
	FindByID(ctx context.Context, id uint) (*Client, error)

	// FindByUserID 根据用户账号ID查找客户档案
	// 不存在时返回ErrClientNotFound
	FindByUserID(ctx context.Context, userID uint) (*Client, error)

	// Update 更新客户档案
	Update(ctx context.Context, client *Client) error

	// Delete 删除客户档案
	// 注意:该客户的历史订单由外键级联删除(原始schema的既定行为)
	Delete(ctx context.Context, id uint) error

	// List 分页查询客户列表
	List(ctx context.Context, page, pageSize int) ([]*Client, int64, error)
}

// EmployeeRepository 员工仓储接口
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, pageSize int) ([]*Employee, int64, error)
}

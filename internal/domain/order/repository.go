package order

import (
	"context"
	"time"
)

// TxManager 事务边界抽象
// 设计说明:
// 1. 账本的正确性完全依赖"订单+明细+扣库存"在一个事务里提交,
//    这里把事务边界抽象成接口,mysql.TxManager是生产实现
// 2. 依赖注入而非全局句柄:用例可以在测试里换成内存fixture
// 3. fn返回error则整体回滚,返回nil则提交;不存在部分落库的中间态
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Summary 订单摘要(列表视图)
// Total是查询时由明细汇总出的计算列,不是存储列
type Summary struct {
	ID         uint
	ClientID   uint
	ClientName string
	Status     Status
	Total      float64
	CreatedAt  time.Time
}

// ItemView 订单明细视图(带书名)
// 图书被删除时其明细行已被级联删除,所以这里的Title总是可解析的
type ItemView struct {
	ID       uint
	Title    string
	Quantity int
	Price    float64
}

// ListParams 订单列表查询参数
type ListParams struct {
	// UserID 非nil时只返回该用户(经clients.user_id关联)的订单
	// client角色只能看自己的订单,staff看全部
	UserID   *uint
	Page     int
	PageSize int
}

// Normalize 规范化分页参数(与图书检索同一套约定)
func (p *ListParams) Normalize() {
	if p.PageSize == 0 {
		p.PageSize = 10
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

// Repository 订单仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建订单(包含订单明细)
	// 必须在TxManager.Transaction内调用:订单行与明细行要么全部存在要么全不存在
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// ListSummaries 分页查询订单摘要,按ID倒序(新单在前),Total实时汇总
	ListSummaries(ctx context.Context, params ListParams) ([]*Summary, int64, error)

	// ListItems 查询订单明细视图(按明细ID顺序,即插入顺序)
	ListItems(ctx context.Context, orderID uint) ([]*ItemView, error)

	// UpdateStatus 更新订单状态(员工显式操作,任意状态间自由设置)
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// Delete 删除订单(明细由外键级联删除;不回补库存)
	Delete(ctx context.Context, id uint) error
}

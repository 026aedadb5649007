package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 两个扣减方法对应两条下单路径:
//    - DecrementStock: 客户结算路径,带库存保护(扣减后不允许为负)
//    - DecrementStockUnchecked: 员工下单路径,信任调用方,允许负库存(欠货单)
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 整体覆盖更新图书的四个业务字段
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除)
	// 注意:历史订单中引用该书的order_items由外键级联删除,
	// 这是既定的破坏性行为,不要在仓储层"修复"
	Delete(ctx context.Context, id uint) error

	// Search 分页检索图书
	// keyword为空时返回全部;非空时对书名/作者做大小写不敏感的子串匹配
	Search(ctx context.Context, params SearchParams) ([]*Book, int64, error)

	// DecrementStock 扣减库存(原子操作,带保护)
	// UPDATE books SET quantity = quantity - ? WHERE id = ? AND quantity - ? >= 0
	// 数量不足时返回ErrInsufficientStock,图书不存在时返回ErrBookNotFound
	DecrementStock(ctx context.Context, id uint, quantity int) error

	// DecrementStockUnchecked 扣减库存(原子操作,不做数量检查)
	// 员工下单不校验库存,允许扣成负数(代表欠货)
	DecrementStockUnchecked(ctx context.Context, id uint, quantity int) error
}

// SearchParams 检索参数
type SearchParams struct {
	Keyword  string // 搜索关键词(匹配书名、作者)
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
}

// Normalize 规范化分页参数
// 约定:pageSize夹取到[1,100],page至少为1(与原始API的paginate行为一致)
func (p *SearchParams) Normalize() {
	if p.PageSize == 0 {
		p.PageSize = 10 // 未传时的默认页大小
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

// Offset 计算偏移量
func (p SearchParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

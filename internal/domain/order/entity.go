package order

import (
	"time"
)

// Status 订单状态
// 设计说明:
// 1. 封闭枚举,不允许自由字符串(替代原始系统的裸字符串状态)
// 2. 刻意不做状态机:任何状态都可以被员工直接改成任何其他状态,
//    系统不产生自动流转,所有变更都是显式的人工操作
type Status string

const (
	StatusNew       Status = "new"       // 新建
	StatusPaid      Status = "paid"      // 已支付
	StatusShipped   Status = "shipped"   // 已发货
	StatusCancelled Status = "cancelled" // 已取消
)

// Valid 校验状态取值
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPaid, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	return string(s)
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是子实体,必须在同一事务里一起落库
// 2. 账本不会创建零条目订单:Items非空是创建前提
// 3. 不冗余总金额列,列表查询时由明细实时汇总
type Order struct {
	ID        uint
	ClientID  uint        // 下单客户ID
	Status    Status      // 订单状态
	Items     []OrderItem // 订单明细(聚合内的子实体)
	CreatedAt time.Time
}

// OrderItem 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. Price记录"下单时的价格"(历史价格快照),之后目录改价不回溯影响
// 3. 订单创建后明细不可编辑、不可单独删除
type OrderItem struct {
	ID       uint
	OrderID  uint    // 所属订单ID
	BookID   uint    // 图书ID
	Quantity int     // 购买数量
	Price    float64 // 下单时的单价(快照)
}

// NewOrder 创建新订单(工厂方法)
// 初始状态由调用方给定,员工路径可以指定,结算路径固定为new
func NewOrder(clientID uint, status Status, items []OrderItem) *Order {
	if status == "" {
		status = StatusNew
	}
	return &Order{
		ClientID:  clientID,
		Status:    status,
		Items:     items,
		CreatedAt: time.Now(),
	}
}

// Total 计算订单总金额(按明细汇总)
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

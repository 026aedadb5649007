package cart

import (
	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Entry 购物车条目
// 设计说明:
// 1. Title/Price是加购时刻的快照:之后目录改价不影响已在车里的条目,
//    结算提交的也是快照价(与订单明细的历史价格快照语义一致)
// 2. 条目不持久化到主库,生命周期=会话(结算成功或手工移除时消失)
type Entry struct {
	BookID   uint    `json:"book_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Cart 购物车(显式值对象)
// 设计说明:
// 1. 不是散落在session里的自由结构,而是由请求层取出、传入、存回的值对象
// 2. 条目保持插入顺序(切片而非map)
// 3. 购物车只是意向清单,不锁定库存;Add只对"加购当时"的库存负责,
//    真正的强制校验发生在结算时
type Cart struct {
	Entries []Entry `json:"entries"`
}

// New 创建空购物车
func New() *Cart {
	return &Cart{}
}

// Add 加购
// 业务规则(依序校验):
// 1. 图书无货(在库数量<=0) → ErrOutOfStock
// 2. 请求数量最低按1算:newTotal = 车内已有数量 + max(1, requested)
// 3. newTotal超过当前在库数量 → InsufficientStock(消息带可用数量)
// 4. 通过后upsert条目:数量取newTotal,Title/Price取图书当前值作快照
// 图书不存在的判定在调用方(仓储FindByID返回ErrBookNotFound)
func (c *Cart) Add(b *book.Book, requestedQty int) error {
	if !b.InStock() {
		return book.ErrOutOfStock
	}

	qty := requestedQty
	if qty < 1 {
		qty = 1
	}

	existing := c.find(b.ID)
	inCart := 0
	if existing != nil {
		inCart = existing.Quantity
	}

	if inCart+qty > b.Quantity {
		return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
			"《%s》库存不足,当前仅有%d本", b.Title, b.Quantity)
	}

	if existing != nil {
		existing.Quantity += qty
		return nil
	}

	c.Entries = append(c.Entries, Entry{
		BookID:   b.ID,
		Title:    b.Title,
		Price:    b.Price,
		Quantity: qty,
	})
	return nil
}

// Remove 移除条目
// 幂等:条目不存在时静默返回,不报错
func (c *Cart) Remove(bookID uint) {
	for i, e := range c.Entries {
		if e.BookID == bookID {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return
		}
	}
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// Clear 清空购物车(结算成功后调用)
func (c *Cart) Clear() {
	c.Entries = nil
}

// Total 车内合计金额(快照价×数量求和)
func (c *Cart) Total() float64 {
	var total float64
	for _, e := range c.Entries {
		total += e.Price * float64(e.Quantity)
	}
	return total
}

// find 按BookID定位条目(返回可修改的指针)
func (c *Cart) find(bookID uint) *Entry {
	for i := range c.Entries {
		if c.Entries[i].BookID == bookID {
			return &c.Entries[i]
		}
	}
	return nil
}

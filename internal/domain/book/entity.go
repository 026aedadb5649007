package book

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是商品目录聚合的根实体:书名、作者、售价、在库数量
// 2. 价格沿用数据库REAL列语义,float64存储
// 3. Quantity是在库数量,本系统中只会被订单创建扣减;
//    补货走管理端的整体覆盖更新,不存在增量入库操作
type Book struct {
	ID       uint
	Title    string  // 书名
	Author   string  // 作者
	Price    float64 // 售价
	Quantity int     // 在库数量
}

// NewBook 创建新图书(工厂方法)
// 注意:与原始系统保持一致,这里不做价格/数量的业务校验,
// 负值属于调用方契约问题,由schema约束兜底
func NewBook(title, author string, price float64, quantity int) *Book {
	return &Book{
		Title:    title,
		Author:   author,
		Price:    price,
		Quantity: quantity,
	}
}

// InStock 是否有货
func (b *Book) InStock() bool {
	return b.Quantity > 0
}

// CanSupply 在库数量是否足以满足请求数量
func (b *Book) CanSupply(quantity int) bool {
	return b.Quantity >= quantity
}

// Overwrite 整体覆盖四个业务字段(管理端编辑语义)
func (b *Book) Overwrite(title, author string, price float64, quantity int) {
	b.Title = title
	b.Author = author
	b.Price = price
	b.Quantity = quantity
}

package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 两个扣减方法都必须能参与事务(dbFromContext提取事务DB)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
// 与原始系统一致:不做业务校验,负值价格/数量由调用方契约约束
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Quantity: b.Quantity,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 整体覆盖更新
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := dbFromContext(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":    b.Title,
			"author":   b.Author,
			"price":    b.Price,
			"quantity": b.Quantity,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		// Updates对"值未变化"也可能报0行,这里确认图书是否存在
		var model BookModel
		if err := dbFromContext(ctx, r.db).First(&model, b.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
	}
	return nil
}

// Delete 删除图书(物理删除)
// order_items中引用该书的行由外键ON DELETE CASCADE连带删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Search 分页检索图书
// 关键词对书名/作者做大小写不敏感的子串匹配
// (MySQL默认collation下LIKE本身不区分大小写)
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	params.Normalize()

	var models []BookModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&BookModel{})

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 自然顺序(按ID),分页
	err := query.Order("id ASC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// DecrementStock 扣减库存(原子操作,带保护)
// UPDATE books SET quantity = quantity - ? WHERE id = ? AND quantity - ? >= 0
// 设计说明:
// 1. 带条件的单条UPDATE在事务内是原子的,并发结算由数据库行锁串行化,
//    扣减后不可能为负,这是结算路径库存不变负的最终防线
// 2. 0行受影响时再查一次区分"图书不存在"和"库存不足",返回友好错误
func (r *bookRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	db := dbFromContext(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("quantity - ? >= 0", quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}

	if result.RowsAffected == 0 {
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		// 图书存在,说明是库存不足
		return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
			"《%s》库存不足,当前仅有%d本", model.Title, model.Quantity)
	}

	return nil
}

// DecrementStockUnchecked 扣减库存(原子操作,不做数量检查)
// 员工下单路径:信任调用方,允许扣成负数(欠货单语义)
func (r *bookRepository) DecrementStockUnchecked(ctx context.Context, id uint, quantity int) error {
	result := dbFromContext(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity - ?", quantity))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:       model.ID,
		Title:    model.Title,
		Author:   model.Author,
		Price:    model.Price,
		Quantity: model.Quantity,
	}
}

package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. Order和OrderItem是聚合关系,必须一起保存(GORM经foreignKey自动级联写入)
// 2. 列表查询的Total用子查询实时汇总,不落冗余列
// 3. 事务通过context传递(dbFromContext)
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(包含订单明细)
// 必须在TxManager.Transaction内调用:
// GORM的Create会把Items一并INSERT,与同事务内的库存扣减共同提交或回滚
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	if len(o.Items) == 0 {
		return order.ErrInvalidOrderItems
	}

	model := toOrderModel(o)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}

	return nil
}

// FindByID 根据ID查找订单(包含明细)
// Preload("Items")避免N+1查询
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := dbFromContext(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// ListSummaries 分页查询订单摘要
// - JOIN clients取客户姓名并支撑user_id过滤(client角色只看自己的订单)
// - Total在应用侧由Preload出的明细汇总(单页最多100单,代价可控)
// - 按订单ID倒序(新单在前)
func (r *orderRepository) ListSummaries(ctx context.Context, params order.ListParams) ([]*order.Summary, int64, error) {
	params.Normalize()

	db := dbFromContext(ctx, r.db)
	query := db.Model(&OrderModel{}).
		Joins("JOIN clients c ON c.id = orders.client_id")

	if params.UserID != nil {
		query = query.Where("c.user_id = ?", *params.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	err := query.Select("orders.*").
		Order("orders.id DESC").
		Limit(params.PageSize).
		Offset((params.Page - 1) * params.PageSize).
		Preload("Items").
		Preload("Client").
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	summaries := make([]*order.Summary, len(models))
	for i := range models {
		m := &models[i]
		var sum float64
		for _, it := range m.Items {
			sum += it.Price * float64(it.Quantity)
		}
		clientName := ""
		if m.Client != nil {
			clientName = m.Client.FullName
		}
		summaries[i] = &order.Summary{
			ID:         m.ID,
			ClientID:   m.ClientID,
			ClientName: clientName,
			Status:     order.Status(m.Status),
			Total:      sum,
			CreatedAt:  m.CreatedAt,
		}
	}
	return summaries, total, nil
}

// ListItems 查询订单明细视图(JOIN books取书名)
func (r *orderRepository) ListItems(ctx context.Context, orderID uint) ([]*order.ItemView, error) {
	db := dbFromContext(ctx, r.db)

	// 先确认订单存在,区分"订单不存在"与"订单无明细"
	// (账本不创建零条目订单,后者理论上不出现,但删除路径要能报NotFound)
	var count int64
	if err := db.Model(&OrderModel{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	if count == 0 {
		return nil, order.ErrOrderNotFound
	}

	type itemRow struct {
		ID       uint
		Title    string
		Quantity int
		Price    float64
	}
	var rows []itemRow
	err := db.Model(&OrderItemModel{}).
		Select("order_items.id, b.title, order_items.quantity, order_items.price").
		Joins("JOIN books b ON b.id = order_items.book_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}

	items := make([]*order.ItemView, len(rows))
	for i, row := range rows {
		items[i] = &order.ItemView{
			ID:       row.ID,
			Title:    row.Title,
			Quantity: row.Quantity,
			Price:    row.Price,
		}
	}
	return items, nil
}

// UpdateStatus 更新订单状态
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	result := dbFromContext(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		var model OrderModel
		if err := dbFromContext(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return order.ErrOrderNotFound
			}
			return apperrors.Wrap(err, "查询订单失败")
		}
	}
	return nil
}

// Delete 删除订单(明细由外键级联删除;不回补库存)
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&OrderModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &OrderModel{
		ClientID: o.ClientID,
		Status:   string(o.Status),
		Items:    items,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &order.Order{
		ID:        model.ID,
		ClientID:  model.ClientID,
		Status:    order.Status(model.Status),
		Items:     items,
		CreatedAt: model.CreatedAt,
	}
}

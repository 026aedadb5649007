package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/party"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// clientRepository 客户仓储实现(MySQL)
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository 创建客户仓储
func NewClientRepository(db *gorm.DB) party.ClientRepository {
	return &clientRepository{db: db}
}

// Create 创建客户档案
// user_id的UNIQUE索引冲突转换为ErrClientUserDuplicate,
// FindOrCreateClientForUser靠这个错误实现重试幂等
func (r *clientRepository) Create(ctx context.Context, c *party.Client) error {
	model := &ClientModel{
		FullName: c.FullName,
		Contact:  c.Contact,
		Notes:    c.Notes,
		UserID:   c.UserID,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return party.ErrClientUserDuplicate
		}
		return apperrors.Wrap(err, "创建客户失败")
	}

	c.ID = model.ID
	return nil
}

// FindByID 根据ID查找客户
func (r *clientRepository) FindByID(ctx context.Context, id uint) (*party.Client, error) {
	var model ClientModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, party.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toClientEntity(&model), nil
}

// FindByUserID 根据用户账号ID查找客户档案
func (r *clientRepository) FindByUserID(ctx context.Context, userID uint) (*party.Client, error) {
	var model ClientModel
	err := dbFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, party.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toClientEntity(&model), nil
}

// Update 更新客户档案(不触碰user_id)
func (r *clientRepository) Update(ctx context.Context, c *party.Client) error {
	result := dbFromContext(ctx, r.db).Model(&ClientModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"full_name": c.FullName,
			"contact":   c.Contact,
			"notes":     c.Notes,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新客户失败")
	}
	if result.RowsAffected == 0 {
		var model ClientModel
		if err := dbFromContext(ctx, r.db).First(&model, c.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return party.ErrClientNotFound
			}
			return apperrors.Wrap(err, "查询客户失败")
		}
	}
	return nil
}

// Delete 删除客户档案(该客户的订单由外键级联删除)
func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&ClientModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除客户失败")
	}
	if result.RowsAffected == 0 {
		return party.ErrClientNotFound
	}
	return nil
}

// List 分页查询客户列表
func (r *clientRepository) List(ctx context.Context, page, pageSize int) ([]*party.Client, int64, error) {
	var models []ClientModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&ClientModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询客户总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询客户列表失败")
	}

	clients := make([]*party.Client, len(models))
	for i := range models {
		clients[i] = toClientEntity(&models[i])
	}
	return clients, total, nil
}

// toClientEntity GORM模型 → 领域实体
func toClientEntity(model *ClientModel) *party.Client {
	return &party.Client{
		ID:       model.ID,
		FullName: model.FullName,
		Contact:  model.Contact,
		Notes:    model.Notes,
		UserID:   model.UserID,
	}
}

// =========================================
// 员工仓储
// =========================================

// employeeRepository 员工仓储实现(MySQL)
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository 创建员工仓储
func NewEmployeeRepository(db *gorm.DB) party.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create 创建员工档案
func (r *employeeRepository) Create(ctx context.Context, e *party.Employee) error {
	model := &EmployeeModel{
		FullName: e.FullName,
		Position: e.Position,
		Contact:  e.Contact,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建员工失败")
	}

	e.ID = model.ID
	return nil
}

// FindByID 根据ID查找员工
func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*party.Employee, error) {
	var model EmployeeModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, party.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "查询员工失败")
	}
	return toEmployeeEntity(&model), nil
}

// Update 更新员工档案
func (r *employeeRepository) Update(ctx context.Context, e *party.Employee) error {
	result := dbFromContext(ctx, r.db).Model(&EmployeeModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"full_name": e.FullName,
			"position":  e.Position,
			"contact":   e.Contact,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新员工失败")
	}
	if result.RowsAffected == 0 {
		var model EmployeeModel
		if err := dbFromContext(ctx, r.db).First(&model, e.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return party.ErrEmployeeNotFound
			}
			return apperrors.Wrap(err, "查询员工失败")
		}
	}
	return nil
}

// Delete 删除员工档案
func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&EmployeeModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除员工失败")
	}
	if result.RowsAffected == 0 {
		return party.ErrEmployeeNotFound
	}
	return nil
}

// List 分页查询员工列表
func (r *employeeRepository) List(ctx context.Context, page, pageSize int) ([]*party.Employee, int64, error) {
	var models []EmployeeModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&EmployeeModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询员工总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询员工列表失败")
	}

	employees := make([]*party.Employee, len(models))
	for i := range models {
		employees[i] = toEmployeeEntity(&models[i])
	}
	return employees, total, nil
}

// toEmployeeEntity GORM模型 → 领域实体
func toEmployeeEntity(model *EmployeeModel) *party.Employee {
	return &party.Employee{
		ID:       model.ID,
		FullName: model.FullName,
		Position: model.Position,
		Contact:  model.Contact,
	}
}

package party

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/party"
)

// EmployeeDTO 员工档案DTO
type EmployeeDTO struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Contact  string `json:"contact"`
}

func toEmployeeDTO(e *party.Employee) *EmployeeDTO {
	return &EmployeeDTO{
		ID:       e.ID,
		FullName: e.FullName,
		Position: e.Position,
		Contact:  e.Contact,
	}
}

// ManageEmployeesUseCase 员工档案管理用例(管理员操作)
// 员工档案是纯花名册,与登录账号无关联
type ManageEmployeesUseCase struct {
	employeeRepo party.EmployeeRepository
}

// NewManageEmployeesUseCase 创建员工档案管理用例
func NewManageEmployeesUseCase(employeeRepo party.EmployeeRepository) *ManageEmployeesUseCase {
	return &ManageEmployeesUseCase{employeeRepo: employeeRepo}
}

// EmployeeInput 员工档案写入DTO
type EmployeeInput struct {
	FullName string
	Position string
	Contact  string
}

// Create 新增员工档案
func (uc *ManageEmployeesUseCase) Create(ctx context.Context, input EmployeeInput) (*EmployeeDTO, error) {
	e := party.NewEmployee(input.FullName, input.Position, input.Contact)
	if err := uc.employeeRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeDTO(e), nil
}

// Get 查看单个员工档案
func (uc *ManageEmployeesUseCase) Get(ctx context.Context, id uint) (*EmployeeDTO, error) {
	e, err := uc.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeDTO(e), nil
}

// Update 整体覆盖更新员工档案
func (uc *ManageEmployeesUseCase) Update(ctx context.Context, id uint, input EmployeeInput) (*EmployeeDTO, error) {
	e, err := uc.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Overwrite(input.FullName, input.Position, input.Contact)
	if err := uc.employeeRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeDTO(e), nil
}

// Delete 删除员工档案
func (uc *ManageEmployeesUseCase) Delete(ctx context.Context, id uint) error {
	return uc.employeeRepo.Delete(ctx, id)
}

// List 分页查询员工档案
func (uc *ManageEmployeesUseCase) List(ctx context.Context, page, pageSize int) ([]*EmployeeDTO, int64, error) {
	employees, total, err := uc.employeeRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	return dtos, total, nil
}

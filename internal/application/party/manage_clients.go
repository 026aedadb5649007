package party

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/party"
)

// ClientDTO 客户档案DTO
type ClientDTO struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
	Notes    string `json:"notes"`
	UserID   *uint  `json:"user_id,omitempty"` // 关联账号,未关联时省略
}

func toClientDTO(c *party.Client) *ClientDTO {
	return &ClientDTO{
		ID:       c.ID,
		FullName: c.FullName,
		Contact:  c.Contact,
		Notes:    c.Notes,
		UserID:   c.UserID,
	}
}

// ManageClientsUseCase 客户档案管理用例(员工操作)
type ManageClientsUseCase struct {
	clientRepo party.ClientRepository
}

// NewManageClientsUseCase 创建客户档案管理用例
func NewManageClientsUseCase(clientRepo party.ClientRepository) *ManageClientsUseCase {
	return &ManageClientsUseCase{clientRepo: clientRepo}
}

// ClientInput 客户档案写入DTO
type ClientInput struct {
	FullName string
	Contact  string
	Notes    string
}

// Create 手工建档(不关联账号,线下客户)
func (uc *ManageClientsUseCase) Create(ctx context.Context, input ClientInput) (*ClientDTO, error) {
	c := party.NewClient(input.FullName, input.Contact, input.Notes)
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientDTO(c), nil
}

// Get 查看单个客户档案
func (uc *ManageClientsUseCase) Get(ctx context.Context, id uint) (*ClientDTO, error) {
	c, err := uc.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientDTO(c), nil
}

// Update 整体覆盖更新档案(不改user_id关联)
func (uc *ManageClientsUseCase) Update(ctx context.Context, id uint, input ClientInput) (*ClientDTO, error) {
	c, err := uc.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Overwrite(input.FullName, input.Contact, input.Notes)
	if err := uc.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientDTO(c), nil
}

// Delete 删除客户档案
// 该客户的订单(连同明细)被级联删除,既定的破坏性行为
func (uc *ManageClientsUseCase) Delete(ctx context.Context, id uint) error {
	return uc.clientRepo.Delete(ctx, id)
}

// List 分页查询客户档案
func (uc *ManageClientsUseCase) List(ctx context.Context, page, pageSize int) ([]*ClientDTO, int64, error) {
	clients, total, err := uc.clientRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	return dtos, total, nil
}

package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 自助注册（固定client角色）
	Register(ctx context.Context, login, password string) (*User, error)

	// CreateUser 管理员创建用户（任意角色）
	CreateUser(ctx context.Context, login, password string, role Role) (*User, error)

	// Login 登录校验
	Login(ctx context.Context, login, password string) (*User, error)

	// UpdateUser 管理员更新用户：角色必改,密码仅在非空时重置
	UpdateUser(ctx context.Context, id uint, role Role, newPassword string) error

	// DeleteUser 管理员删除用户
	DeleteUser(ctx context.Context, id uint) error

	// ListUsers 分页查询用户
	ListUsers(ctx context.Context, page, pageSize int) ([]*User, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 自助注册
// 业务规则：
// 1. 登录名、密码非空（格式校验在HTTP层binding tag完成）
// 2. 密码bcrypt加密（cost=12）
// 3. 登录名唯一性由数据库UNIQUE索引保证（并发安全）
// 4. 自助注册只能得到client角色
func (s *service) Register(ctx context.Context, login, password string) (*User, error) {
	return s.CreateUser(ctx, login, password, RoleClient)
}

// CreateUser 创建用户
func (s *service) CreateUser(ctx context.Context, login, password string, role Role) (*User, error) {
	if login == "" || password == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "登录名和密码不能为空")
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// 密码加密
	// 说明：bcrypt自动加盐，cost=12在安全性与性能间取平衡
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(login, string(hash), role)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误(如ErrLoginDuplicate)
	}

	return u, nil
}

// Login 登录校验
// 业务规则：登录名不存在与密码错误返回同一个错误，避免暴露账号是否存在
func (s *service) Login(ctx context.Context, login, password string) (*User, error) {
	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeUserNotFound) {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return u, nil
}

// UpdateUser 更新用户
// 与原始行为保持一致：角色总是覆盖，密码只在提供了新密码时重置
func (s *service) UpdateUser(ctx context.Context, id uint, role Role, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.ChangeRole(role); err != nil {
		return err
	}

	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
		if err != nil {
			return apperrors.Wrap(err, "密码加密失败")
		}
		u.ChangePassword(string(hash))
	}

	return s.repo.Update(ctx, u)
}

// DeleteUser 删除用户
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListUsers 分页查询用户
func (s *service) ListUsers(ctx context.Context, page, pageSize int) ([]*User, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

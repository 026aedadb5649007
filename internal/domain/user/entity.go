package user

import (
	"time"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是账号聚合的根实体：登录名、密码哈希、角色
// 2. 密码已加密存储（bcrypt），不提供任何返回明文的方法
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID           uint
	Login        string // 登录名（全局唯一）
	PasswordHash string // bcrypt哈希值
	Role         Role
	CreatedAt    time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(login, hashedPassword string, role Role) *User {
	return &User{
		Login:        login,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// ChangeRole 变更角色（领域行为，仅管理员入口会调用）
func (u *User) ChangeRole(role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	u.Role = role
	return nil
}

// ChangePassword 变更密码哈希
// 说明：哈希由Service层生成，实体只负责持有
func (u *User) ChangePassword(hashedPassword string) {
	u.PasswordHash = hashedPassword
}

package dto

// RegisterRequest 注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}

// UserInfo 用户信息(不含密码)
type UserInfo struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// CreateUserRequest 管理员创建账号请求
type CreateUserRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"required,oneof=admin worker client"`
}

// UpdateUserRequest 管理员更新账号请求
// password留空表示不重置密码
type UpdateUserRequest struct {
	Role     string `json:"role" binding:"required,oneof=admin worker client"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
}

// UserResponse 账号响应
type UserResponse struct {
	ID        uint   `json:"id"`
	Login     string `json:"login"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

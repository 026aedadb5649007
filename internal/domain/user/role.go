package user

// Role 用户角色
// 设计说明:
// 1. 封闭枚举,不允许自由字符串(数据库层同样有CHECK约束)
// 2. 三种角色之间没有隐式包含关系:admin并不自动拥有worker的权限,
//    每个接口显式声明允许的角色集合
type Role string

const (
	RoleAdmin  Role = "admin"  // 管理员
	RoleWorker Role = "worker" // 店员
	RoleClient Role = "client" // 客户
)

// Valid 校验角色取值
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWorker, RoleClient:
		return true
	}
	return false
}

// String 实现Stringer接口
func (r Role) String() string {
	return string(r)
}

// In 判断角色是否在给定集合内(纯谓词,供鉴权中间件使用)
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}

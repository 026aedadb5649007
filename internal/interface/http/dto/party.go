package dto

// ClientRequest 客户档案写入请求
type ClientRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Contact  string `json:"contact" binding:"max=200"`
	Notes    string `json:"notes"`
}

// ClientResponse 客户档案响应
type ClientResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
	Notes    string `json:"notes"`
	UserID   *uint  `json:"user_id,omitempty"`
}

// EmployeeRequest 员工档案写入请求
type EmployeeRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Position string `json:"position" binding:"max=100"`
	Contact  string `json:"contact" binding:"max=200"`
}

// EmployeeResponse 员工档案响应
type EmployeeResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Contact  string `json:"contact"`
}

// PageQuery 通用分页查询参数
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize 夹取分页参数
// 与各仓储的分页约定一致:page_size落在[1,100],缺省10;page至少为1。
// 在HTTP边界统一夹取,响应里回显的就是实际生效的值
func (q *PageQuery) Normalize() {
	if q.PageSize == 0 {
		q.PageSize = 10
	}
	if q.PageSize < 1 {
		q.PageSize = 1
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	if q.Page < 1 {
		q.Page = 1
	}
}

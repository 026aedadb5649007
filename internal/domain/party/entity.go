package party

// Client 客户档案实体
// DDD设计说明:
// 1. Client与User是两个聚合:User负责登录凭证,Client负责交易档案
// 2. UserID可空:店里手工录入的客户可以没有线上账号
// 3. UserID非空时全局唯一(一个账号至多一份客户档案,数据库UNIQUE索引保证)
type Client struct {
	ID       uint
	FullName string // 姓名
	Contact  string // 联系方式
	Notes    string // 备注
	UserID   *uint  // 关联的用户账号ID(可空)
}

// NewClient 创建客户档案(员工手工录入)
func NewClient(fullName, contact, notes string) *Client {
	return &Client{
		FullName: fullName,
		Contact:  contact,
		Notes:    notes,
	}
}

// NewClientForUser 为线上账号创建最小客户档案
// 结算时惰性创建:姓名默认取登录名,联系方式/备注留空
func NewClientForUser(userID uint, login string) *Client {
	return &Client{
		FullName: login,
		UserID:   &userID,
	}
}

// Overwrite 整体覆盖三个可编辑字段(管理端编辑语义,不触碰UserID)
func (c *Client) Overwrite(fullName, contact, notes string) {
	c.FullName = fullName
	c.Contact = contact
	c.Notes = notes
}

// Employee 员工档案实体
// 独立实体,与User无任何关联(收银台排班用,不承载登录能力)
type Employee struct {
	ID       uint
	FullName string // 姓名
	Position string // 岗位
	Contact  string // 联系方式
}

// NewEmployee 创建员工档案
func NewEmployee(fullName, position, contact string) *Employee {
	return &Employee{
		FullName: fullName,
		Position: position,
		Contact:  contact,
	}
}

// Overwrite 整体覆盖员工档案字段
func (e *Employee) Overwrite(fullName, position, contact string) {
	e.FullName = fullName
	e.Position = position
	e.Contact = contact
}

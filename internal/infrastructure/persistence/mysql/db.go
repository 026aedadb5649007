package mysql

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	if err := seedIfEmpty(db); err != nil {
		return nil, fmt.Errorf("初始化种子数据失败: %w", err)
	}

	return db, nil
}

// seedIfEmpty 空库时写入演示数据
// 三个演示账号(admin/worker/client)各代表一种角色,密码为"<登录名>123";
// 只在users表为空时执行,已有数据的库不受影响
func seedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []struct {
		login, password, role string
	}{
		{"admin", "admin123", "admin"},
		{"worker", "worker123", "worker"},
		{"client", "client123", "client"},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&UserModel{
			Login:        u.login,
			PasswordHash: string(hash),
			Role:         u.role,
		}).Error; err != nil {
			return err
		}
	}

	books := []BookModel{
		{Title: "Go语言实战", Author: "威廉·肯尼迪", Price: 99.00, Quantity: 12},
		{Title: "领域驱动设计", Author: "埃里克·埃文斯", Price: 89.00, Quantity: 8},
		{Title: "设计数据密集型应用", Author: "马丁·克莱普曼", Price: 128.00, Quantity: 5},
	}
	if err := db.Create(&books).Error; err != nil {
		return err
	}

	log.Println("✓ 演示数据初始化完成")
	return nil
}

// autoMigrate 自动迁移表结构
// 注意：这里用的是GORM模型（带tag），不是domain层的实体
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&EmployeeModel{},
		&ClientModel{},
		&BookModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. infrastructure层的数据模型，domain/user/entity.go是领域实体，
//    Repository负责两者之间的转换
// 2. 角色存字符串并加CHECK约束（与封闭枚举对齐）
// 3. 不做软删除：删除用户时关联Client的user_id由外键置NULL
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Login        string    `gorm:"uniqueIndex;size:100;not null;comment:登录名"`
	PasswordHash string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role         string    `gorm:"size:10;not null;check:role IN ('admin','worker','client');comment:角色"`
	CreatedAt    time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// EmployeeModel GORM员工模型
// 独立表，与users无外键关系
type EmployeeModel struct {
	ID       uint   `gorm:"primaryKey"`
	FullName string `gorm:"size:200;not null;comment:姓名"`
	Position string `gorm:"size:100;comment:岗位"`
	Contact  string `gorm:"size:200;comment:联系方式"`
}

// TableName 指定表名
func (EmployeeModel) TableName() string {
	return "employees"
}

// ClientModel GORM客户模型
// 设计说明:
// 1. user_id可空且唯一:一个账号至多一份客户档案
// 2. 外键ON DELETE SET NULL:删除用户账号时档案保留,仅断开关联
type ClientModel struct {
	ID       uint       `gorm:"primaryKey"`
	FullName string     `gorm:"size:200;not null;comment:姓名"`
	Contact  string     `gorm:"size:200;comment:联系方式"`
	Notes    string     `gorm:"type:text;comment:备注"`
	UserID   *uint      `gorm:"uniqueIndex;comment:关联用户账号ID"`
	User     *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TableName 指定表名
func (ClientModel) TableName() string {
	return "clients"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格沿用REAL列语义(double),quantity是在库数量
// 2. 书名/作者加索引支撑检索
// 3. 物理删除:删书时历史订单的order_items行被级联删除(既定破坏性行为)
type BookModel struct {
	ID       uint    `gorm:"primaryKey"`
	Title    string  `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author   string  `gorm:"index:idx_search;size:100;comment:作者"`
	Price    float64 `gorm:"not null;comment:售价"`
	Quantity int     `gorm:"not null;default:0;comment:在库数量"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel一对多,明细随订单级联删除
// 2. 订单随客户档案级联删除(原始schema的既定行为)
// 3. 状态存字符串,CHECK约束对齐封闭枚举
type OrderModel struct {
	ID        uint             `gorm:"primaryKey"`
	ClientID  uint             `gorm:"index;not null;comment:下单客户ID"`
	Client    *ClientModel     `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Status    string           `gorm:"size:10;not null;default:'new';check:status IN ('new','paid','shipped','cancelled');comment:订单状态"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // 一对多关联
	CreatedAt time.Time        `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 设计说明:
// 1. Price记录下单时的价格快照
// 2. book_id外键ON DELETE CASCADE:删书会连带删掉历史明细行,
//    这是对原始schema行为的保留,不要"顺手"改成RESTRICT
type OrderItemModel struct {
	ID       uint       `gorm:"primaryKey"`
	OrderID  uint       `gorm:"index;not null;comment:订单ID"`
	BookID   uint       `gorm:"index;not null;comment:图书ID"`
	Book     *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Quantity int        `gorm:"not null;comment:购买数量"`
	Price    float64    `gorm:"not null;comment:下单时单价(快照)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

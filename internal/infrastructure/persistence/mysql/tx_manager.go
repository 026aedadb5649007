package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的key类型(避免裸字符串key冲突)
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法,实现order.TxManager接口
// 2. 通过context传递事务DB(避免全局变量)
// 3. fn返回error时自动ROLLBACK,返回nil时自动COMMIT:
//    订单行、明细行、库存扣减要么全部生效要么全不生效,
//    不存在跨事务可观察的部分落库状态
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := orderRepo.Create(ctx, order); err != nil {
//	        return err // 自动回滚
//	    }
//	    for _, it := range order.Items {
//	        if err := bookRepo.DecrementStock(ctx, it.BookID, it.Quantity); err != nil {
//	            return err // 自动回滚:订单和已扣库存一起撤销
//	        }
//	    }
//	    return nil // 提交
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中,Repository的getDB会从context提取
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// dbFromContext 从context获取事务DB,没有则返回fallback
// 所有Repository共用这一个提取点
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

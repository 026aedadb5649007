package user

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrLoginDuplicate 登录名已存在（唯一索引冲突）
	ErrLoginDuplicate = apperrors.ErrLoginDuplicate

	// ErrInvalidRole 非法角色
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的用户角色")

	// ErrInvalidPassword 登录名或密码错误
	ErrInvalidPassword = apperrors.ErrInvalidPassword
)

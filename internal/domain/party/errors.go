package party

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 客户/员工领域错误定义
var (
	// ErrClientNotFound 客户不存在
	ErrClientNotFound = apperrors.ErrClientNotFound

	// ErrEmployeeNotFound 员工不存在
	ErrEmployeeNotFound = apperrors.ErrEmployeeNotFound

	// ErrClientUserDuplicate 该用户已有客户档案(user_id唯一索引冲突)
	ErrClientUserDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该用户已有客户档案")
)

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBookCRUD 测试图书维护全流程
func TestBookCRUD(t *testing.T) {
	RequireServer(t)

	adminToken := LoginAs(t, AdminLogin, AdminPassword)
	title := GenerateTestLogin("图书")

	book := CreateTestBook(t, adminToken, title, 59.80, 10)
	require.Equal(t, title, book.Title)
	require.Equal(t, 10, book.Quantity)

	t.Run("查询详情", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/"+itoa(book.ID), adminToken)
		require.Equal(t, 0, resp.Code, "查询失败: %s", resp.Message)

		var got BookData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Equal(t, 59.80, got.Price)
	})

	t.Run("整体覆盖更新", func(t *testing.T) {
		resp := PutJSON(t, BaseURL+"/books/"+itoa(book.ID), map[string]interface{}{
			"title":    title,
			"author":   "集成测试作者",
			"price":    99.00,
			"quantity": 20, // 补货走整体覆盖
		}, adminToken)
		require.Equal(t, 0, resp.Code, "更新失败: %s", resp.Message)

		var got BookData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Equal(t, 99.00, got.Price)
		require.Equal(t, 20, got.Quantity)
	})

	t.Run("关键词检索", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?keyword="+title, adminToken)
		require.Equal(t, 0, resp.Code, "检索失败: %s", resp.Message)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.Equal(t, int64(1), page.Total, "唯一标题应恰好命中1条")
	})

	t.Run("删除", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/books/"+itoa(book.ID), adminToken)
		require.Equal(t, 0, resp.Code, "删除失败: %s", resp.Message)

		resp = GetJSON(t, BaseURL+"/books/"+itoa(book.ID), adminToken)
		require.Equal(t, 40402, resp.Code, "删除后查询应返回图书不存在")
	})
}

// TestBookSearchPagination 测试检索分页参数夹取
func TestBookSearchPagination(t *testing.T) {
	RequireServer(t)

	adminToken := LoginAs(t, AdminLogin, AdminPassword)

	t.Run("page_size上限100", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page_size=500", adminToken)
		require.Equal(t, 0, resp.Code, "检索失败: %s", resp.Message)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.Equal(t, 100, page.PageSize)
	})

	t.Run("page最小为1", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page=-3", adminToken)
		require.Equal(t, 0, resp.Code, "检索失败: %s", resp.Message)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.Equal(t, 1, page.Page)
	})
}

// TestBookRolePermissions 测试图书接口的角色边界
func TestBookRolePermissions(t *testing.T) {
	RequireServer(t)

	workerToken := LoginAs(t, WorkerLogin, WorkerPassword)
	_, clientToken := RegisterTestClient(t, "reader")

	book := CreateTestBook(t, workerToken, GenerateTestLogin("权限"), 10.00, 1)

	t.Run("client可以检索", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/"+itoa(book.ID), clientToken)
		require.Equal(t, 0, resp.Code, "client检索失败: %s", resp.Message)
	})

	t.Run("worker不能删除图书", func(t *testing.T) {
		// 删除级联抹掉历史明细,只留给admin
		resp := DeleteJSON(t, BaseURL+"/books/"+itoa(book.ID), workerToken)
		require.Equal(t, 40104, resp.Code, "worker删除图书应被拒绝")
	})
}

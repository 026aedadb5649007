package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCheckoutFlow 测试客户结算全流程
// 上架 → 加购 → 查看购物车 → 结算 → 库存扣减 → 订单可见
func TestCheckoutFlow(t *testing.T) {
	RequireServer(t)

	adminToken := LoginAs(t, AdminLogin, AdminPassword)
	_, clientToken := RegisterTestClient(t, "buyer")

	book := CreateTestBook(t, adminToken, GenerateTestLogin("结算"), 59.80, 5)

	t.Run("加购", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/cart/items", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 2,
		}, clientToken)
		require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

		var cart CartData
		require.NoError(t, json.Unmarshal(resp.Data, &cart))
		require.Len(t, cart.Entries, 1)
		require.Equal(t, 2, cart.Entries[0].Quantity)
		require.Equal(t, 119.60, cart.Total)
	})

	var orderID uint
	t.Run("结算", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/orders/checkout", nil, clientToken)
		require.Equal(t, 0, resp.Code, "结算失败: %s", resp.Message)

		var data CheckoutData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Equal(t, "new", data.Status)
		require.Equal(t, 119.60, data.Total)
		require.Equal(t, 1, data.ItemCount)
		orderID = data.OrderID
	})

	t.Run("库存已扣减", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/"+itoa(book.ID), clientToken)
		require.Equal(t, 0, resp.Code)

		var got BookData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Equal(t, 3, got.Quantity)
	})

	t.Run("结算后购物车清空", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/cart", clientToken)
		require.Equal(t, 0, resp.Code)

		var cart CartData
		require.NoError(t, json.Unmarshal(resp.Data, &cart))
		require.Empty(t, cart.Entries)
	})

	t.Run("空车再次结算被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/orders/checkout", nil, clientToken)
		require.Equal(t, 40003, resp.Code, "空购物车结算应返回错误")
	})

	t.Run("client看到自己的订单", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/orders", clientToken)
		require.Equal(t, 0, resp.Code)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		var list []OrderSummaryData
		require.NoError(t, json.Unmarshal(page.List, &list))

		require.Len(t, list, 1, "首次结算的客户应恰好有1单")
		require.Equal(t, orderID, list[0].ID)
		require.Equal(t, 119.60, list[0].Total)
	})

	t.Run("订单明细带书名和快照价", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/orders/"+itoa(orderID)+"/items", clientToken)
		require.Equal(t, 0, resp.Code)

		var items []OrderItemData
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		require.Len(t, items, 1)
		require.Equal(t, book.Title, items[0].Title)
		require.Equal(t, 59.80, items[0].Price)
	})

	t.Run("别的client看不到这单", func(t *testing.T) {
		_, otherToken := RegisterTestClient(t, "other")
		resp := GetJSON(t, BaseURL+"/orders/"+itoa(orderID)+"/items", otherToken)
		// 不泄露订单是否存在,统一返回不存在
		require.Equal(t, 40403, resp.Code)
	})
}

// TestCartStockGuard 测试加购时的库存校验
func TestCartStockGuard(t *testing.T) {
	RequireServer(t)

	adminToken := LoginAs(t, AdminLogin, AdminPassword)
	_, clientToken := RegisterTestClient(t, "guard")

	t.Run("超库存加购", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, GenerateTestLogin("少量"), 10.00, 1)

		resp := PostJSON(t, BaseURL+"/cart/items", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 2,
		}, clientToken)
		require.Equal(t, 40001, resp.Code, "超库存加购应返回库存不足")
	})

	t.Run("无货图书加购", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, GenerateTestLogin("售罄"), 10.00, 0)

		resp := PostJSON(t, BaseURL+"/cart/items", map[string]interface{}{
			"book_id": book.ID,
		}, clientToken)
		require.Equal(t, 40002, resp.Code, "无货加购应返回无货错误")
	})
}

// TestStaffOrder 测试员工代客下单
func TestStaffOrder(t *testing.T) {
	RequireServer(t)

	adminToken := LoginAs(t, AdminLogin, AdminPassword)
	workerToken := LoginAs(t, WorkerLogin, WorkerPassword)

	book := CreateTestBook(t, workerToken, GenerateTestLogin("代客"), 89.00, 1)
	client := CreateTestClientRecord(t, workerToken, "集成测试客户")

	var orderID uint
	t.Run("超库存下单成欠货单", func(t *testing.T) {
		// 员工路径不校验库存,成交价75.00与目录价89.00不同
		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"client_id": client.ID,
			"status":    "paid",
			"items": []map[string]interface{}{
				{"book_id": book.ID, "quantity": 3, "price": 75.00},
			},
		}, workerToken)
		require.Equal(t, 0, resp.Code, "员工下单失败: %s", resp.Message)

		var data CheckoutData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Equal(t, "paid", data.Status)
		orderID = data.OrderID

		// 库存被扣成负数(欠货2本)
		bookResp := GetJSON(t, BaseURL+"/books/"+itoa(book.ID), workerToken)
		var got BookData
		require.NoError(t, json.Unmarshal(bookResp.Data, &got))
		require.Equal(t, -2, got.Quantity)
	})

	t.Run("明细按成交价入账", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/orders/"+itoa(orderID)+"/items", workerToken)
		require.Equal(t, 0, resp.Code)

		var items []OrderItemData
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		require.Len(t, items, 1)
		require.Equal(t, 75.00, items[0].Price, "应记员工给定的成交价而非目录价")
	})

	t.Run("状态自由流转", func(t *testing.T) {
		// 没有状态机,员工可直接设任意合法状态
		resp := PutJSON(t, BaseURL+"/orders/"+itoa(orderID)+"/status", map[string]string{
			"status": "cancelled",
		}, workerToken)
		require.Equal(t, 0, resp.Code, "改状态失败: %s", resp.Message)

		resp = PutJSON(t, BaseURL+"/orders/"+itoa(orderID)+"/status", map[string]string{
			"status": "shipped",
		}, workerToken)
		require.Equal(t, 0, resp.Code, "改状态失败: %s", resp.Message)
	})

	t.Run("非法状态被拒绝", func(t *testing.T) {
		resp := PutJSON(t, BaseURL+"/orders/"+itoa(orderID)+"/status", map[string]string{
			"status": "pending",
		}, workerToken)
		require.NotEqual(t, 0, resp.Code, "非法状态应被拒绝")
	})

	t.Run("worker不能删除订单", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/orders/"+itoa(orderID), workerToken)
		require.Equal(t, 40104, resp.Code)
	})

	t.Run("admin删除订单", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/orders/"+itoa(orderID), adminToken)
		require.Equal(t, 0, resp.Code, "删除订单失败: %s", resp.Message)

		// 删除不回补库存
		bookResp := GetJSON(t, BaseURL+"/books/"+itoa(book.ID), adminToken)
		var got BookData
		require.NoError(t, json.Unmarshal(bookResp.Data, &got))
		require.Equal(t, -2, got.Quantity)
	})
}

// TestBookDeleteCascade 测试删书对历史订单的级联影响
func TestBookDeleteCascade(t *testing.T) {
	RequireServer(t)

	adminToken := LoginAs(t, AdminLogin, AdminPassword)
	_, clientToken := RegisterTestClient(t, "cascade")

	book := CreateTestBook(t, adminToken, GenerateTestLogin("将删"), 30.00, 5)

	// 客户买下这本书
	resp := PostJSON(t, BaseURL+"/cart/items", map[string]interface{}{
		"book_id": book.ID, "quantity": 1,
	}, clientToken)
	require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

	resp = PostJSON(t, BaseURL+"/orders/checkout", nil, clientToken)
	require.Equal(t, 0, resp.Code, "结算失败: %s", resp.Message)
	var data CheckoutData
	require.NoError(t, json.Unmarshal(resp.Data, &data))

	// admin删书,历史订单的明细行被级联删掉(既定破坏性行为)
	resp = DeleteJSON(t, BaseURL+"/books/"+itoa(book.ID), adminToken)
	require.Equal(t, 0, resp.Code, "删书失败: %s", resp.Message)

	resp = GetJSON(t, BaseURL+"/orders/"+itoa(data.OrderID)+"/items", clientToken)
	require.Equal(t, 0, resp.Code, "订单本身应仍然存在: %s", resp.Message)

	var items []OrderItemData
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Empty(t, items, "明细行应随图书级联删除")
}

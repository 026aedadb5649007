package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试针对运行中的服务(go run ./cmd/api),通过HTTP走完整链路;
// 服务未启动时整组跳过,不影响单元测试

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// 种子账号(空库启动时由seedIfEmpty写入)
const (
	AdminLogin     = "admin"
	AdminPassword  = "admin123"
	WorkerLogin    = "worker"
	WorkerPassword = "worker123"
)

// RequireServer 服务不可达时跳过当前测试
func RequireServer(t *testing.T) {
	conn, err := net.DialTimeout("tcp", "localhost:8080", 500*time.Millisecond)
	if err != nil {
		t.Skipf("API服务不可达,跳过集成测试: %v", err)
	}
	conn.Close()
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserInfoData 用户信息
type UserInfoData struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// LoginData 登录响应数据
type LoginData struct {
	User        UserInfoData `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

// BookData 图书响应数据
type BookData struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// PageData 分页响应数据
type PageData struct {
	List     json.RawMessage `json:"list"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// CartData 购物车响应数据
type CartData struct {
	Entries []CartEntryData `json:"entries"`
	Total   float64         `json:"total"`
}

// CartEntryData 购物车条目
type CartEntryData struct {
	BookID   uint    `json:"book_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CheckoutData 结算响应数据
type CheckoutData struct {
	OrderID   uint    `json:"order_id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// OrderSummaryData 订单摘要
type OrderSummaryData struct {
	ID         uint    `json:"id"`
	ClientID   uint    `json:"client_id"`
	ClientName string  `json:"client_name"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
}

// OrderItemData 订单明细
type OrderItemData struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// ClientData 客户档案响应数据
type ClientData struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
}

// doJSON 发送JSON请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// itoa 把数据库ID拼进URL
func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

// GenerateTestLogin 生成唯一的测试登录名
// 时间戳保证重复运行不撞uniqueIndex
func GenerateTestLogin(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// LoginAs 用已有账号登录,返回AccessToken
func LoginAs(t *testing.T, login, password string) string {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/auth/login", map[string]string{
		"login":    login,
		"password": password,
	}, "")
	require.Equal(t, 0, resp.Code, "登录失败: %s", resp.Message)

	var data LoginData
	require.NoError(t, json.Unmarshal(resp.Data, &data), "解析登录响应失败")
	return data.AccessToken
}

// RegisterTestClient 注册并登录一个客户账号
func RegisterTestClient(t *testing.T, prefix string) (login string, token string) {
	t.Helper()

	login = GenerateTestLogin(prefix)
	resp := PostJSON(t, BaseURL+"/auth/register", map[string]string{
		"login":    login,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	return login, LoginAs(t, login, "Test1234")
}

// CreateTestBook 用员工Token上架图书
func CreateTestBook(t *testing.T, token, title string, price float64, quantity int) BookData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":    title,
		"author":   "集成测试作者",
		"price":    price,
		"quantity": quantity,
	}, token)
	require.Equal(t, 0, resp.Code, "图书上架失败: %s", resp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book), "解析图书响应失败")
	return book
}

// CreateTestClientRecord 用员工Token录入客户档案
func CreateTestClientRecord(t *testing.T, token, fullName string) ClientData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/clients", map[string]string{
		"full_name": fullName,
		"contact":   "+86 130-0000-0000",
	}, token)
	require.Equal(t, 0, resp.Code, "录入客户失败: %s", resp.Message)

	var client ClientData
	require.NoError(t, json.Unmarshal(resp.Data, &client), "解析客户响应失败")
	return client
}

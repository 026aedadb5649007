package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func performRole(t *testing.T, m *AuthMiddleware, role string, required ...user.Role) (int, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		c.Set("role", role)
	}

	handled := false
	handlers := []gin.HandlerFunc{m.RequireRole(required...), func(c *gin.Context) { handled = true }}
	for _, h := range handlers {
		h(c)
		if c.IsAborted() {
			break
		}
	}
	if handled {
		return 0, w
	}

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法JSON: %v", err)
	}
	return body.Code, w
}

// TestRequireRole 测试角色检查中间件
func TestRequireRole(t *testing.T) {
	m := &AuthMiddleware{}

	t.Run("角色在集合内放行", func(t *testing.T) {
		code, _ := performRole(t, m, "worker", user.RoleAdmin, user.RoleWorker)
		if code != 0 {
			t.Errorf("worker应被放行，实际错误码%d", code)
		}
	})

	t.Run("角色不在集合内返回40104", func(t *testing.T) {
		code, _ := performRole(t, m, "client", user.RoleAdmin, user.RoleWorker)
		if code != 40104 {
			t.Errorf("client访问员工接口应返回40104，实际%d", code)
		}
	})

	t.Run("admin没有隐式的worker权限", func(t *testing.T) {
		// 角色集合逐接口显式声明,不声明admin就拦admin
		code, _ := performRole(t, m, "admin", user.RoleClient)
		if code != 40104 {
			t.Errorf("admin访问client专属接口应返回40104，实际%d", code)
		}
	})

	t.Run("未注入角色一律拒绝", func(t *testing.T) {
		code, _ := performRole(t, m, "", user.RoleAdmin)
		if code != 40104 {
			t.Errorf("无角色应返回40104，实际%d", code)
		}
	})
}

// TestRequireAuth_MissingToken 测试未登录与权限不足是两种错误
func TestRequireAuth_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := &AuthMiddleware{}

	t.Run("缺Authorization头返回40100", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		m.RequireAuth()(c)

		var body envelope
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("响应不是合法JSON: %v", err)
		}
		if body.Code != 40100 {
			t.Errorf("未登录应返回40100（区别于权限不足的40104），实际%d", body.Code)
		}
		if !c.IsAborted() {
			t.Error("认证失败应中断请求链")
		}
	})

	t.Run("Token格式错误返回40101", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		m.RequireAuth()(c)

		var body envelope
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("响应不是合法JSON: %v", err)
		}
		if body.Code != 40101 {
			t.Errorf("非Bearer格式应返回40101，实际%d", body.Code)
		}
	})
}

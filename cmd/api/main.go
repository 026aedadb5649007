package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appparty "github.com/xiebiao/bookshop/internal/application/party"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/party"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// main 主程序入口
// 手动依赖注入版本,与wire.go的自动注入等价
// Repository ← Service ← UseCase ← Handler
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 可观测性
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookshop", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("[WARN] 关闭tracer失败: %v", err)
			}
		}()
	}

	// 3. 存储连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 订单事件发布(可选,本地开发不依赖RabbitMQ)
	var events apporder.EventPublisher = apporder.NopEventPublisher{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		events = apporder.NewMQEventPublisher(publisher)
	}

	// 5. 依赖注入（手动组装）

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	clientRepo := mysql.NewClientRepository(db)
	employeeRepo := mysql.NewEmployeeRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	cartStore := redis.NewCartStore(redisClient, cfg.JWT.RefreshTokenExpire)

	// 会话黑名单查询的熔断器:连续5次Redis失败后打开,30秒后半开探测
	authBreaker := circuitbreaker.NewCircuitBreaker("auth-redis", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	// 领域层
	userService := user.NewService(userRepo)
	partyService := party.NewService(clientRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cartStore, jwtManager)
	manageUsersUseCase := appuser.NewManageUsersUseCase(userService)
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookRepo)
	manageBooksUseCase := appbook.NewManageBooksUseCase(bookRepo)
	manageClientsUseCase := appparty.NewManageClientsUseCase(clientRepo)
	manageEmployeesUseCase := appparty.NewManageEmployeesUseCase(employeeRepo)
	cartUseCase := appcart.NewCartUseCase(cartStore, bookRepo)
	checkoutUseCase := apporder.NewCheckoutUseCase(orderRepo, bookRepo, cartStore, partyService, txManager, events)
	createOrderUseCase := apporder.NewCreateOrderUseCase(orderRepo, bookRepo, clientRepo, txManager, events)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	listItemsUseCase := apporder.NewListOrderItemsUseCase(orderRepo, clientRepo)
	updateStatusUseCase := apporder.NewUpdateOrderStatusUseCase(orderRepo)
	deleteOrderUseCase := apporder.NewDeleteOrderUseCase(orderRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, manageUsersUseCase)
	bookHandler := handler.NewBookHandler(searchBooksUseCase, manageBooksUseCase)
	clientHandler := handler.NewClientHandler(manageClientsUseCase)
	employeeHandler := handler.NewEmployeeHandler(manageEmployeesUseCase)
	cartHandler := handler.NewCartHandler(cartUseCase)
	orderHandler := handler.NewOrderHandler(
		checkoutUseCase, createOrderUseCase, listOrdersUseCase,
		listItemsUseCase, updateStatusUseCase, deleteOrderUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore, authBreaker)

	// 6. Gin引擎与路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, clientHandler, employeeHandler, cartHandler, orderHandler, authMiddleware)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n\n", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 权限约定:
// - admin: 账号管理与所有破坏性删除,外加worker的全部权限
// - worker: 图书维护、客户/员工档案、订单管理(不含删除)
// - client: 目录检索、购物车、结算、查看自己的订单
// 角色集合逐接口显式声明,admin不靠隐式包含获得worker权限
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	clientHandler *handler.ClientHandler,
	employeeHandler *handler.EmployeeHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	auth *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块(注册/登录公开,登出需要登录)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", userHandler.Register)
			authGroup.POST("/login", userHandler.Login)
			authGroup.POST("/logout", auth.RequireAuth(), userHandler.Logout)
		}

		// 以下全部需要登录
		authorized := v1.Group("")
		authorized.Use(auth.RequireAuth())

		// 账号管理(仅admin)
		users := authorized.Group("/users")
		users.Use(auth.RequireRole(user.RoleAdmin))
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// 员工档案(员工可读写,删除仅admin)
		employees := authorized.Group("/employees")
		employees.Use(auth.RequireRole(user.RoleAdmin, user.RoleWorker))
		{
			employees.GET("", employeeHandler.List)
			employees.GET("/:id", employeeHandler.Get)
			employees.POST("", employeeHandler.Create)
			employees.PUT("/:id", employeeHandler.Update)
			employees.DELETE("/:id", auth.RequireRole(user.RoleAdmin), employeeHandler.Delete)
		}

		// 图书目录(检索对所有角色开放,维护仅员工)
		books := authorized.Group("/books")
		{
			books.GET("", bookHandler.Search)
			books.GET("/:id", bookHandler.Get)

			staffBooks := books.Group("")
			staffBooks.Use(auth.RequireRole(user.RoleAdmin, user.RoleWorker))
			{
				staffBooks.POST("", bookHandler.Create)
				staffBooks.PUT("/:id", bookHandler.Update)
				// 删除会级联抹掉历史订单里的明细行,只留给admin
				staffBooks.DELETE("/:id", auth.RequireRole(user.RoleAdmin), bookHandler.Delete)
			}
		}

		// 客户档案(员工可读写,删除仅admin)
		clients := authorized.Group("/clients")
		clients.Use(auth.RequireRole(user.RoleAdmin, user.RoleWorker))
		{
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.Get)
			clients.POST("", clientHandler.Create)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", auth.RequireRole(user.RoleAdmin), clientHandler.Delete)
		}

		// 购物车(仅client)
		cart := authorized.Group("/cart")
		cart.Use(auth.RequireRole(user.RoleClient))
		{
			cart.GET("", cartHandler.View)
			cart.POST("/items", cartHandler.Add)
			cart.DELETE("/items/:book_id", cartHandler.Remove)
		}

		// 订单
		orders := authorized.Group("/orders")
		{
			// 列表和明细对所有角色开放,client在Handler里被限定只看自己的
			orders.GET("", orderHandler.List)
			orders.GET("/:id/items", orderHandler.Items)

			// 结算仅client
			orders.POST("/checkout", auth.RequireRole(user.RoleClient), orderHandler.Checkout)

			// 创建/改状态仅员工,删除仅admin
			staffOrders := orders.Group("")
			staffOrders.Use(auth.RequireRole(user.RoleAdmin, user.RoleWorker))
			{
				staffOrders.POST("", orderHandler.Create)
				staffOrders.PUT("/:id/status", orderHandler.UpdateStatus)
				staffOrders.DELETE("/:id", auth.RequireRole(user.RoleAdmin), orderHandler.Delete)
			}
		}
	}
}

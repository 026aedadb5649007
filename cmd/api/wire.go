//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式:
// 1. 修改Provider后运行 `wire gen ./cmd/api`
// 2. Wire生成wire_gen.go,包含完整的依赖创建代码
// 3. InitializeApp()与main.go里的手动组装等价
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appparty "github.com/xiebiao/bookshop/internal/application/party"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/party"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewClientRepository,
	mysql.NewEmployeeRepository,
	mysql.NewOrderRepository,
	provideTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	party.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewManageUsersUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewManageBooksUseCase,
	appparty.NewManageClientsUseCase,
	appparty.NewManageEmployeesUseCase,
	appcart.NewCartUseCase,
	apporder.NewCheckoutUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewListOrderItemsUseCase,
	apporder.NewUpdateOrderStatusUseCase,
	apporder.NewDeleteOrderUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideCartStore,
	provideAuthBreaker,
	provideEventPublisher,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewClientHandler,
	handler.NewEmployeeHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideCartStore 购物车存储,TTL与会话生命周期对齐
func provideCartStore(client *goredis.Client, cfg *config.Config) cart.Store {
	return redis.NewCartStore(client, cfg.JWT.RefreshTokenExpire)
}

// provideTxManager 事务管理器(绑定到order.TxManager接口)
func provideTxManager(db *gorm.DB) order.TxManager {
	return mysql.NewTxManager(db)
}

// provideAuthBreaker 会话黑名单查询的熔断器
func provideAuthBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker("auth-redis", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// provideEventPublisher 订单事件发布器(mq.enabled=false时退化为no-op)
func provideEventPublisher(cfg *config.Config) apporder.EventPublisher {
	if !cfg.MQ.Enabled {
		return apporder.NopEventPublisher{}
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		log.Fatalf("初始化消息队列失败: %v", err)
	}
	return apporder.NewMQEventPublisher(publisher)
}

// provideGinEngine 创建并配置Gin引擎(路由注册复用main.go的registerRoutes)
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	clientHandler *handler.ClientHandler,
	employeeHandler *handler.EmployeeHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, userHandler, bookHandler, clientHandler, employeeHandler, cartHandler, orderHandler, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}

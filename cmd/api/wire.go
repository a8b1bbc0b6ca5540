//go:build wireinject
// +build wireinject

// Wire依赖注入配置，`wire gen ./cmd/api` 生成 wire_gen.go
// main.go 保留手动组装，两者使用相同的Provider

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appattribute "github.com/xiebiao/catalog/internal/application/attribute"
	appcategory "github.com/xiebiao/catalog/internal/application/category"
	appproduct "github.com/xiebiao/catalog/internal/application/product"
	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/infrastructure/config"
	"github.com/xiebiao/catalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/catalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/catalog/internal/interface/http/handler"
	"github.com/xiebiao/catalog/internal/interface/http/middleware"
	"github.com/xiebiao/catalog/internal/interface/http/router"
	"github.com/xiebiao/catalog/pkg/logger"
)

// infrastructureSet 配置、日志、数据库、Redis、事件发布
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	mysql.NewDB,
	redis.NewClient,
	provideEventPublisher,
)

// repositorySet 仓储与缓存
var repositorySet = wire.NewSet(
	mysql.NewCategoryRepository,
	mysql.NewAttributeRepository,
	mysql.NewOptionRepository,
	mysql.NewProductRepository,
	mysql.NewTxManager,
	provideProductCache,
	redis.NewTokenBlacklist,
	wire.Bind(new(appproduct.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appcategory.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appattribute.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appproduct.DetailCache), new(*redis.ProductCache)),
	wire.Bind(new(middleware.Blacklist), new(*redis.TokenBlacklist)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	provideCategoryService,
	attribute.NewService,
	wire.Bind(new(appproduct.CategoryResolver), new(category.Service)),
	wire.Bind(new(appproduct.AttributeResolver), new(attribute.Service)),
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	providePageLimits,
	appcategory.NewUseCase,
	appattribute.NewUseCase,
	appproduct.NewCreateProductUseCase,
	appproduct.NewUpdateProductUseCase,
	appproduct.NewGetProductUseCase,
	appproduct.NewListProductsUseCase,
	appproduct.NewDeleteProductUseCase,
)

// interfaceSet 中间件、处理器、路由
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewCategoryHandler,
	handler.NewAttributeHandler,
	handler.NewProductHandler,
	handler.NewAuthHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideRouterOptions,
	router.New,
)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
}

func provideCategoryService(cfg *config.Config, repo category.Repository) category.Service {
	return category.NewService(repo, cfg.Catalog.MaxCategoryDepth)
}

func provideProductCache(cfg *config.Config, client *goredis.Client) *redis.ProductCache {
	return redis.NewProductCache(client, cfg.Cache.DetailTTL)
}

// InitializeApp 组装HTTP引擎，cleanup关闭事件发布连接
func InitializeApp() (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}

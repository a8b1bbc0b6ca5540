package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/xiebiao/catalog/docs"
	appattribute "github.com/xiebiao/catalog/internal/application/attribute"
	appcategory "github.com/xiebiao/catalog/internal/application/category"
	appproduct "github.com/xiebiao/catalog/internal/application/product"
	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/infrastructure/config"
	"github.com/xiebiao/catalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/catalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/catalog/internal/interface/grpc/health"
	"github.com/xiebiao/catalog/internal/interface/http/handler"
	"github.com/xiebiao/catalog/internal/interface/http/middleware"
	"github.com/xiebiao/catalog/internal/interface/http/router"
	"github.com/xiebiao/catalog/pkg/logger"
	"github.com/xiebiao/catalog/pkg/tracing"
)

const healthProbeInterval = 10 * time.Second

// @title           Catalog API
// @version         1.0
// @description     商品目录服务：分类、属性、商品及规格
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// 1. 配置与日志
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	// 2. 链路追踪
	shutdownTracer := tracing.ShutdownFunc(func(context.Context) error { return nil })
	if cfg.Tracing.Enabled {
		shutdownTracer, err = tracing.InitTracer(tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			zlog.Fatal("初始化链路追踪失败", zap.Error(err))
		}
	}

	// 3. 基础设施
	db, err := mysql.NewDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("获取数据库连接池失败", zap.Error(err))
	}
	defer sqlDB.Close()

	redisClient, err := redis.NewClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化Redis失败", zap.Error(err))
	}
	defer redisClient.Close()

	publisher, closePublisher, err := provideEventPublisher(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化事件发布失败", zap.Error(err))
	}
	defer closePublisher()

	// 4. 依赖注入
	// Repository ← Service ← UseCase ← Handler
	tx := mysql.NewTxManager(db)
	productRepo := mysql.NewProductRepository(db)
	cache := redis.NewProductCache(redisClient, cfg.Cache.DetailTTL)
	limits := providePageLimits(cfg)

	categoryService := category.NewService(mysql.NewCategoryRepository(db), cfg.Catalog.MaxCategoryDepth)
	attributeService := attribute.NewService(mysql.NewAttributeRepository(db), mysql.NewOptionRepository(db))

	jwtManager := provideJWTManager(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, redis.NewTokenBlacklist(redisClient))

	handlers := router.Handlers{
		Category:  handler.NewCategoryHandler(appcategory.NewUseCase(categoryService, tx, limits)),
		Attribute: handler.NewAttributeHandler(appattribute.NewUseCase(attributeService, tx, limits)),
		Product: handler.NewProductHandler(
			appproduct.NewCreateProductUseCase(productRepo, categoryService, attributeService, tx, cache, publisher, zlog),
			appproduct.NewUpdateProductUseCase(productRepo, categoryService, attributeService, tx, cache, publisher, zlog),
			appproduct.NewGetProductUseCase(productRepo, cache, zlog),
			appproduct.NewListProductsUseCase(productRepo, limits),
			appproduct.NewDeleteProductUseCase(productRepo, cache, publisher, zlog),
		),
		Auth: handler.NewAuthHandler(authMiddleware),
	}

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	engine := router.New(provideRouterOptions(cfg), zlog, handlers, authMiddleware)

	// 5. gRPC健康检查
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker := health.NewChecker(sqlDB, healthProbeInterval, zlog)
	grpcServer := grpc.NewServer()
	checker.Register(grpcServer)
	go checker.Run(ctx)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
	if err != nil {
		zlog.Fatal("监听gRPC端口失败", zap.Error(err))
	}
	go func() {
		zlog.Info("gRPC健康检查启动", zap.Int("port", cfg.GRPC.Port))
		if err := grpcServer.Serve(lis); err != nil {
			zlog.Error("gRPC服务异常退出", zap.Error(err))
		}
	}()

	// 6. HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		zlog.Info("HTTP服务启动", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	// 7. 优雅关闭
	<-ctx.Done()
	zlog.Info("正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("HTTP服务关闭失败", zap.Error(err))
	}
	grpcServer.GracefulStop()
	if err := shutdownTracer(shutdownCtx); err != nil {
		zlog.Error("关闭链路追踪失败", zap.Error(err))
	}

	zlog.Info("服务已关闭")
}

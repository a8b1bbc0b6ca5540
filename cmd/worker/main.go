package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appproduct "github.com/xiebiao/catalog/internal/application/product"
	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/infrastructure/config"
	"github.com/xiebiao/catalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/catalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/catalog/pkg/logger"
	"github.com/xiebiao/catalog/pkg/mq"
)

// 缓存预热worker：消费商品事件，重建详情缓存
func main() {
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

	if !cfg.RabbitMQ.Enabled {
		zlog.Fatal("worker需要启用rabbitmq")
	}

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

	cache := redis.NewProductCache(redisClient, cfg.Cache.DetailTTL)
	loader := appproduct.NewGetProductUseCase(mysql.NewProductRepository(db), cache, zlog)
	warmer := appproduct.NewCacheWarmer(loader, cache, cfg.RabbitMQ.Queue, zlog)

	consumer, err := mq.NewConsumer(mq.Options{
		URL:          cfg.RabbitMQ.URL,
		Exchange:     cfg.RabbitMQ.Exchange,
		ExchangeType: cfg.RabbitMQ.ExchangeType,
	}, cfg.RabbitMQ.Queue, []string{
		string(product.EventCreated),
		string(product.EventUpdated),
		string(product.EventDeleted),
	}, zlog)
	if err != nil {
		zlog.Fatal("创建消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		// worker的指标端口为HTTP端口+1
		metricsSrv = &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port+1), Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zlog.Error("指标服务异常退出", zap.Error(err))
			}
		}()
	}

	if err := consumer.Consume(ctx, warmer.Handle); err != nil {
		zlog.Error("消费中断", zap.Error(err))
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	zlog.Info("worker已退出")
}

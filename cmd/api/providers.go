package main

import (
	"go.uber.org/zap"

	appproduct "github.com/xiebiao/catalog/internal/application/product"
	"github.com/xiebiao/catalog/internal/domain/shared"
	"github.com/xiebiao/catalog/internal/infrastructure/config"
	"github.com/xiebiao/catalog/internal/infrastructure/event"
	"github.com/xiebiao/catalog/internal/interface/http/router"
	"github.com/xiebiao/catalog/pkg/jwt"
	"github.com/xiebiao/catalog/pkg/mq"
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpire)
}

func providePageLimits(cfg *config.Config) shared.PageLimits {
	return shared.PageLimits{
		DefaultSize: cfg.Catalog.DefaultPageSize,
		MaxSize:     cfg.Catalog.MaxPageSize,
	}
}

func provideRouterOptions(cfg *config.Config) router.Options {
	opts := router.Options{
		Mode:    cfg.Server.Mode,
		Swagger: cfg.Server.Mode != "release",
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	return opts
}

// provideEventPublisher 未启用RabbitMQ时事件只记录日志
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (appproduct.EventPublisher, func(), error) {
	if !cfg.RabbitMQ.Enabled {
		return event.NewNopPublisher(log), func() {}, nil
	}

	sender, err := mq.NewPublisher(mq.Options{
		URL:          cfg.RabbitMQ.URL,
		Exchange:     cfg.RabbitMQ.Exchange,
		ExchangeType: cfg.RabbitMQ.ExchangeType,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := sender.Close(); err != nil {
			log.Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return event.NewPublisher(sender, log), cleanup, nil
}

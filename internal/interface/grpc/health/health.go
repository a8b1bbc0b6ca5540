package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName 目录服务在健康检查中的名称
const ServiceName = "catalog.v1.Catalog"

// Pinger 依赖探活，*sql.DB 满足该接口
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Checker 定期探测数据库，更新gRPC健康状态
type Checker struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	log      *zap.Logger
}

func NewChecker(pinger Pinger, interval time.Duration, log *zap.Logger) *Checker {
	return &Checker{
		server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		log:      log,
	}
}

// Register 注册 grpc.health.v1 与反射服务
func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.server)
	reflection.Register(s)
}

// Server 健康检查服务实现
func (c *Checker) Server() healthpb.HealthServer {
	return c.server
}

// Probe 执行一次探测并更新状态
func (c *Checker) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := c.pinger.PingContext(ctx); err != nil {
		c.log.Warn("数据库探活失败", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return status
}

// Run 阻塞直到ctx结束，结束时标记为NOT_SERVING
func (c *Checker) Run(ctx context.Context) {
	c.Probe(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}

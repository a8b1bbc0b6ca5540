package event

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/pkg/circuitbreaker"
	"github.com/xiebiao/catalog/pkg/metrics"
)

// Sender 消息发送，由 mq.Publisher 实现
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// Publisher 商品事件发布（熔断保护）
// Broker不可用时熔断，快速失败，不拖慢写请求
type Publisher struct {
	sender  Sender
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	log     *zap.Logger
}

func NewPublisher(sender Sender, log *zap.Logger) *Publisher {
	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "event-publisher",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(5),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})

	return &Publisher{
		sender:  sender,
		breaker: breaker,
		timeout: 3 * time.Second,
		log:     log,
	}
}

func (p *Publisher) Publish(ctx context.Context, ev product.Event) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	key := string(ev.Type)
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.sender.Publish(ctx, key, ev)
	})

	result := metrics.Result(err)
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		result = "rejected"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": p.breaker.Name(), "result": result})
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{"routing_key": key, "result": result})
	return err
}

// NopPublisher 未启用RabbitMQ时使用
type NopPublisher struct {
	log *zap.Logger
}

func NewNopPublisher(log *zap.Logger) *NopPublisher {
	return &NopPublisher{log: log}
}

func (p *NopPublisher) Publish(_ context.Context, ev product.Event) error {
	p.log.Debug("事件发布未启用", zap.String("type", string(ev.Type)), zap.Uint("product_id", ev.ProductID))
	return nil
}

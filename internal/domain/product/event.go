package product

import "time"

// EventType 商品事件类型，同时作为MQ路由键
type EventType string

const (
	EventCreated EventType = "catalog.product.created"
	EventUpdated EventType = "catalog.product.updated"
	EventDeleted EventType = "catalog.product.deleted"
)

// Event 商品变更事件（事务提交后发布）
type Event struct {
	Type       EventType `json:"type"`
	ProductID  uint      `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(t EventType, p *Product) Event {
	return Event{
		Type:       t,
		ProductID:  p.ID,
		Name:       p.Name,
		OccurredAt: time.Now(),
	}
}

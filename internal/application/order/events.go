package order

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// OrderCreatedEvent 订单创建事件
// 下单成功(事务已提交)后发布,供下游消费(通知、报表等)
type OrderCreatedEvent struct {
	OrderID   uint    `json:"order_id"`
	ClientID  uint    `json:"client_id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
	Source    string  `json:"source"` // checkout | staff
	CreatedAt string  `json:"created_at"`
}

// EventPublisher 订单事件发布接口
// 设计说明:
// 1. 用例只依赖接口,RabbitMQ实现与no-op实现都在下面,测试可注入fake
// 2. 事件发布在事务提交之后,发布失败只记日志不回滚订单
//    (订单是事实,通知尽力而为)
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent)
}

// MQEventPublisher 基于RabbitMQ的事件发布器
type MQEventPublisher struct {
	publisher *mq.Publisher
}

// NewMQEventPublisher 创建RabbitMQ事件发布器
func NewMQEventPublisher(publisher *mq.Publisher) *MQEventPublisher {
	return &MQEventPublisher{publisher: publisher}
}

// PublishOrderCreated 发布订单创建事件
func (p *MQEventPublisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) {
	if err := p.publisher.Publish("order.created", event); err != nil {
		log.Printf("[WARN] 发布订单创建事件失败 order_id=%d: %v", event.OrderID, err)
	}
}

// NopEventPublisher 空实现(mq.enabled=false时使用)
type NopEventPublisher struct{}

// PublishOrderCreated 不做任何事
func (NopEventPublisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) {}

// newOrderCreatedEvent 从订单实体构建事件
func newOrderCreatedEvent(o *order.Order, source string) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:   o.ID,
		ClientID:  o.ClientID,
		Status:    o.Status.String(),
		Total:     o.Total(),
		ItemCount: len(o.Items),
		Source:    source,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

package ws

import (
	"time"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/transport/ws"
	"LandKingdom/internal/shared/utils"
	"LandKingdom/modules/kit/logx"

	"go.uber.org/zap"
)

// PushEvent 是事件推送的消息名。
const PushEvent = "events.push"

// EventMsg 是推送给订阅者的一条事件；ID 全局递增，客户端据此去重。
type EventMsg struct {
	ID    int64        `json:"id"`
	At    int64        `json:"at"`
	Event domain.Event `json:"event"`
}

// EventPublisher 把已提交的事件广播给匹配订阅条件的连接。
type EventPublisher struct {
	hub *ws.Hub
	ids *utils.Snowflake
	log logx.Logger
	now func() time.Time
}

func NewEventPublisher(hub *ws.Hub, ids *utils.Snowflake, log logx.Logger) *EventPublisher {
	if log == nil {
		log = logx.Nop()
	}
	return &EventPublisher{hub: hub, ids: ids, log: log, now: time.Now}
}

// Publish 在 actor 线程调用；投递是非阻塞的，慢连接直接丢消息。
func (p *EventPublisher) Publish(events []domain.Event) {
	if p.hub == nil {
		return
	}
	at := p.now().Unix()
	for _, ev := range events {
		msg := EventMsg{ID: p.nextID(), At: at, Event: ev}
		sent := p.hub.Broadcast(PushEvent, msg, func(c ws.WSConn) bool {
			sub, ok := c.GetProperty(subscriptionKey).(*subscription)
			return ok && sub.match(ev)
		})
		p.log.Debug("kingdom event pushed",
			zap.Int64("id", msg.ID),
			zap.String("kind", string(ev.Kind)),
			zap.Int("receivers", sent))
	}
}

func (p *EventPublisher) nextID() int64 {
	if p.ids == nil {
		gen, err := utils.DefaultSnowflake()
		if err != nil {
			p.log.Warn("snowflake unavailable", zap.Error(err))
			return p.now().UnixNano()
		}
		p.ids = gen
	}
	return p.ids.NextID()
}

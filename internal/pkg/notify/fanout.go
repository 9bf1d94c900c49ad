package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const ChannelConsoleEvents = "console_events"

// Publisher Redis 发布者，把事件广播给其他控制台副本
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish 发布事件
func (p *Publisher) Publish(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal console event: %w", err)
	}
	return p.client.Publish(ctx, ChannelConsoleEvents, data).Err()
}

// Subscriber Redis 订阅者，接收其他副本广播的事件
type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅事件并交给 handler 处理，直到 ctx 结束
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*Event)) error {
	pubsub := s.client.Subscribe(ctx, ChannelConsoleEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}

// FanoutNotifier 本地广播的同时发布到 Redis，供多副本部署使用
type FanoutNotifier struct {
	hub       *Hub
	publisher *Publisher
}

func NewFanoutNotifier(hub *Hub, publisher *Publisher) *FanoutNotifier {
	return &FanoutNotifier{hub: hub, publisher: publisher}
}

func (f *FanoutNotifier) Success(message string) {
	f.hub.Success(message)
	_ = f.publisher.Publish(context.Background(), &Event{Type: TypeToast, Level: LevelSuccess, Message: message})
}

func (f *FanoutNotifier) Error(message string) {
	f.hub.Error(message)
	_ = f.publisher.Publish(context.Background(), &Event{Type: TypeToast, Level: LevelError, Message: message})
}

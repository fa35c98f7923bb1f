// Package redisbus difunde los mensajes de administración por Redis Pub/Sub.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/pkg/config"
)

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// MessageEvent payload publicado en el canal.
type MessageEvent struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Roles       []string  `json:"roles"`
	TargetUsers []string  `json:"targetUsers"`
	SentAt      time.Time `json:"sentAt"`
	SentBy      *string   `json:"sentBy,omitempty"`
}

// Publisher publica cada mensaje en un canal fijo.
type Publisher struct {
	client  redis.UniversalClient
	channel string
}

// NewPublisher construye el publicador.
func NewPublisher(client redis.UniversalClient, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// PublishMessage serializa el mensaje y lo publica.
func (p *Publisher) PublishMessage(ctx context.Context, msg *entity.AdminMessage) error {
	data, err := json.Marshal(MessageEvent{
		ID:          msg.ID,
		Subject:     msg.Subject,
		Message:     msg.Message,
		Roles:       msg.Roles,
		TargetUsers: msg.TargetUsers,
		SentAt:      msg.SentAt,
		SentBy:      msg.SentBy,
	})
	if err != nil {
		return fmt.Errorf("marshal admin message: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	return nil
}

// Package notify queues booking events on a Redis list for an external
// delivery worker.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"gymcore/internal/logger"
	"gymcore/internal/metrics"
)

type EventType string

const (
	SessionBooked      EventType = "session_booked"
	SessionRescheduled EventType = "session_rescheduled"
	ClassSaved         EventType = "class_saved"
	ClassRegistered    EventType = "class_registered"
)

type Event struct {
	Type      EventType `json:"type"`
	MemberID  int       `json:"member_id,omitempty"`
	TrainerID int       `json:"trainer_id"`
	RoomID    int       `json:"room_id"`
	SessionID int       `json:"session_id,omitempty"`
	ClassID   int       `json:"class_id,omitempty"`
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	QueuedAt  time.Time `json:"queued_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type RedisPublisher struct {
	redis *redis.Client
	queue string
	now   func() time.Time
}

func NewRedisPublisher(client *redis.Client, queue string) *RedisPublisher {
	return &RedisPublisher{
		redis: client,
		queue: queue,
		now:   time.Now,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	ev.QueuedAt = p.now().UTC()

	data, err := json.Marshal(ev)
	if err != nil {
		logger.Errorf("Failed to marshal %s event: %v", ev.Type, err)
		return err
	}

	if err := p.redis.LPush(ctx, p.queue, data).Err(); err != nil {
		metrics.RecordNotification(string(ev.Type), "failed")
		logger.Error("failed to queue notification", "type", ev.Type, "queue", p.queue, "error", err)
		return err
	}

	metrics.RecordNotification(string(ev.Type), "queued")
	logger.Debugf("queued %s event on %s", ev.Type, p.queue)
	return nil
}

// QueueLength reports the backlog and mirrors it into the queue gauge.
func (p *RedisPublisher) QueueLength(ctx context.Context) int64 {
	length, err := p.redis.LLen(ctx, p.queue).Result()
	if err != nil {
		return 0
	}
	metrics.SetNotifyQueueLength(length)
	return length
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.redis.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	return p.redis.Close()
}

// Discard drops every event. It stands in when no Redis is configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

package live

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DhavalSuthar-24/crickit/pkg/contracts/events"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ChannelMatchBroadcast is the Redis pub/sub channel live display
// consumers (websocket hubs, charts) subscribe to.
const ChannelMatchBroadcast = "match_updates_broadcast"

// WSUpdate is the payload shape pushed over the broadcast channel.
type WSUpdate struct {
	MatchID uint        `json:"match_id"`
	Payload interface{} `json:"payload"`
}

// Broadcaster fans match snapshots out over Redis pub/sub and announces
// completed matches on Kafka. Either backend may be absent; publishing is
// fire-and-forget and never fails the scoring path.
type Broadcaster struct {
	redis   *redis.Client
	writer  *kafka.Writer
	channel string
	log     *zap.Logger
}

// NewBroadcaster wires the configured backends; pass nil for any that is
// not deployed.
func NewBroadcaster(r *redis.Client, w *kafka.Writer, channel string, log *zap.Logger) *Broadcaster {
	if channel == "" {
		channel = ChannelMatchBroadcast
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Broadcaster{redis: r, writer: w, channel: channel, log: log}
}

// PublishSnapshot pushes the latest match summary to subscribers.
func (b *Broadcaster) PublishSnapshot(ctx context.Context, matchID uint, snapshot interface{}) {
	if b.redis == nil {
		return
	}
	payload, err := json.Marshal(WSUpdate{MatchID: matchID, Payload: snapshot})
	if err != nil {
		b.log.Warn("snapshot marshal failed", zap.Uint("match_id", matchID), zap.Error(err))
		return
	}
	if err := b.redis.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.log.Warn("snapshot publish failed", zap.Uint("match_id", matchID), zap.Error(err))
	}
}

// PublishCompleted produces the MatchCompleted contract event for
// downstream tournament consumers.
func (b *Broadcaster) PublishCompleted(ctx context.Context, e events.MatchCompleted) {
	if b.writer == nil {
		return
	}
	e.TsUnixMs = time.Now().UnixMilli()
	payload, _ := json.Marshal(e)
	err := b.writer.WriteMessages(ctx, kafka.Message{Value: payload})
	if err != nil {
		b.log.Warn("match completed publish failed", zap.Uint("match_id", e.MatchID), zap.Error(err))
	}
}

// NewKafkaWriter builds the producer for a topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

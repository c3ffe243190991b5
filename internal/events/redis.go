package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	eventField    = "event"
	streamMaxLen  = 10000
	readCount     = 10
	readBlock     = 2 * time.Second
	retryInterval = time.Second
)

// InitRedis connects to Redis and verifies the connection.
func InitRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// redisClient is the subset of *redis.Client used by RedisBus.
type redisClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	Close() error
}

// RedisBus appends events to a Redis stream read through a consumer group.
// Every entry goes to exactly one consumer of the group, so several API
// processes can run workers without sending a mail twice. Entries written
// while no worker runs wait in the stream.
type RedisBus struct {
	rdb      redisClient
	stream   string
	group    string
	consumer string
}

// NewRedisBus creates a RedisBus on ContactSubmittedStream. consumer names
// this process inside NotifyGroup and should be stable across restarts so
// unacknowledged entries are picked up again.
func NewRedisBus(rdb redisClient, consumer string) *RedisBus {
	return &RedisBus{
		rdb:      rdb,
		stream:   ContactSubmittedStream,
		group:    NotifyGroup,
		consumer: consumer,
	}
}

var _ Bus = (*RedisBus)(nil)

func (b *RedisBus) Publish(ctx context.Context, ev ContactSubmitted) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	err = b.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{eventField: string(payload)},
	}).Err()
	if err != nil {
		return fmt.Errorf("redis xadd %s: %w", b.stream, err)
	}
	return nil
}

// Subscribe creates the consumer group if needed, then delivers entries
// until ctx is done. An entry is acknowledged once the receiver has taken
// it; entries this consumer read but never handed over are delivered first.
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan ContactSubmitted, error) {
	if err := b.ensureGroup(ctx); err != nil {
		return nil, err
	}
	out := make(chan ContactSubmitted)
	go b.consume(ctx, out)
	return out, nil
}

func (b *RedisBus) ensureGroup(ctx context.Context) error {
	err := b.rdb.XGroupCreateMkStream(ctx, b.stream, b.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("redis xgroup create %s: %w", b.stream, err)
	}
	return nil
}

func (b *RedisBus) consume(ctx context.Context, out chan<- ContactSubmitted) {
	defer close(out)

	// "0" reads this consumer's pending entries, ">" reads new ones.
	start := "0"
	for ctx.Err() == nil {
		streams, err := b.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    b.group,
			Consumer: b.consumer,
			Streams:  []string{b.stream, start},
			Count:    readCount,
			Block:    readBlock,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("redis xreadgroup failed", "stream", b.stream, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryInterval):
			}
			continue
		}

		n := 0
		for _, s := range streams {
			for _, msg := range s.Messages {
				n++
				if !b.deliver(ctx, out, msg) {
					return
				}
			}
		}
		if start == "0" && n == 0 {
			start = ">"
		}
	}
}

// deliver hands msg to out and acknowledges it. It reports false when ctx
// ended first; the entry then stays pending for the next Subscribe.
func (b *RedisBus) deliver(ctx context.Context, out chan<- ContactSubmitted, msg redis.XMessage) bool {
	raw, _ := msg.Values[eventField].(string)
	ev, err := decodeContactSubmitted(raw)
	if err != nil {
		slog.Warn("dropping malformed event", "stream", b.stream, "id", msg.ID, "error", err)
		b.ack(ctx, msg.ID)
		return true
	}
	select {
	case out <- ev:
	case <-ctx.Done():
		return false
	}
	b.ack(ctx, msg.ID)
	return true
}

func (b *RedisBus) ack(ctx context.Context, id string) {
	if err := b.rdb.XAck(context.WithoutCancel(ctx), b.stream, b.group, id).Err(); err != nil {
		slog.Warn("redis xack failed", "stream", b.stream, "id", id, "error", err)
	}
}

func (b *RedisBus) Close() error {
	return b.rdb.Close()
}

func decodeContactSubmitted(payload string) (ContactSubmitted, error) {
	var ev ContactSubmitted
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, fmt.Errorf("decode event: %w", err)
	}
	return ev, nil
}

package scheduler

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// scheduleKey is the sorted set holding pending activations: member is
// the post id, score the activation unix time.
const scheduleKey = "visibility:schedule"

// RedisScheduledQueue implements Scheduler on a Redis sorted set.
type RedisScheduledQueue struct {
	rdb *redis.Client
}

// NewRedisScheduledQueue creates a new RedisScheduledQueue.
func NewRedisScheduledQueue(rdb *redis.Client) *RedisScheduledQueue {
	return &RedisScheduledQueue{rdb: rdb}
}

func (q *RedisScheduledQueue) Schedule(ctx context.Context, postID uint, at time.Time) error {
	member := strconv.FormatUint(uint64(postID), 10)
	return q.rdb.ZAdd(ctx, scheduleKey, redis.Z{
		Score:  float64(at.Unix()),
		Member: member,
	}).Err()
}

func (q *RedisScheduledQueue) Cancel(ctx context.Context, postID uint) error {
	member := strconv.FormatUint(uint64(postID), 10)
	return q.rdb.ZRem(ctx, scheduleKey, member).Err()
}

// Due returns the ids of activations whose time has arrived.
func (q *RedisScheduledQueue) Due(ctx context.Context, now time.Time) ([]uint, error) {
	members, err := q.rdb.ZRangeByScore(ctx, scheduleKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			// Unparseable member; drop it so it does not wedge the queue.
			q.rdb.ZRem(ctx, scheduleKey, m)
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// Ack removes a delivered activation. Called only after the handler
// returned, so a crash in between redelivers on the next poll.
func (q *RedisScheduledQueue) Ack(ctx context.Context, postID uint) error {
	return q.Cancel(ctx, postID)
}

var _ Scheduler = (*RedisScheduledQueue)(nil)

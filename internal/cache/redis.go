package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
)

const (
	keyPrefix = "slots:"
	dayPrefix = keyPrefix + "day:"
	genPrefix = keyPrefix + "gen:"
	epochKey  = keyPrefix + "epoch"

	// genTTL outlives any in-flight computation by a wide margin.
	genTTL = 24 * time.Hour
)

var errStale = errors.New("slot cache version moved")

// Redis keeps one hash per date, field = service id, so a booking or a
// cancellation drops every service's list for that date with a single DEL.
//
// Each date also has a generation counter and the cache as a whole has an
// epoch. Invalidate bumps the date's generation, InvalidateAll bumps the
// epoch, and Set only writes under WATCH when both are unchanged since Get.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, log *zap.Logger) *Redis {
	return &Redis{client: client, ttl: ttl, log: log}
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func dateKey(date string) string {
	return dayPrefix + date
}

func genKey(date string) string {
	return genPrefix + date
}

func field(serviceID uint) string {
	return strconv.FormatUint(uint64(serviceID), 10)
}

// versionOf folds the MGET of epoch and generation into a Version.
// Missing keys count as zero.
func versionOf(vals []interface{}) Version {
	parts := make([]string, len(vals))
	for i, v := range vals {
		s, _ := v.(string)
		if s == "" {
			s = "0"
		}
		parts[i] = s
	}
	return Version(strings.Join(parts, "."))
}

func (c *Redis) Get(ctx context.Context, date string, serviceID uint) ([]domain.TimeSlot, Version, bool) {
	vals, err := c.client.MGet(ctx, epochKey, genKey(date)).Result()
	if err != nil {
		c.log.Warn("slot cache version read failed", zap.String("date", date), zap.Error(err))
		return nil, "", false
	}
	v := versionOf(vals)

	raw, err := c.client.HGet(ctx, dateKey(date), field(serviceID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("slot cache read failed", zap.String("date", date), zap.Error(err))
		}
		return nil, v, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn("slot cache entry corrupt", zap.String("date", date), zap.Error(err))
		return nil, v, false
	}
	return slots, v, true
}

func (c *Redis) Set(ctx context.Context, date string, serviceID uint, v Version, slots []domain.TimeSlot) {
	if v == "" {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	key := dateKey(date)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		vals, err := tx.MGet(ctx, epochKey, genKey(date)).Result()
		if err != nil {
			return err
		}
		if versionOf(vals) != v {
			return errStale
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, field(serviceID), raw)
			p.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, epochKey, genKey(date))

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("slot cache write skipped, invalidated meanwhile", zap.String("date", date))
	default:
		c.log.Warn("slot cache write failed", zap.String("date", date), zap.Error(err))
	}
}

func (c *Redis) Invalidate(ctx context.Context, date string) {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(date))
		p.Expire(ctx, genKey(date), genTTL)
		p.Del(ctx, dateKey(date))
		return nil
	})
	if err != nil {
		c.log.Warn("slot cache invalidate failed", zap.String("date", date), zap.Error(err))
	}
}

func (c *Redis) InvalidateAll(ctx context.Context) {
	if err := c.client.Incr(ctx, epochKey).Err(); err != nil {
		c.log.Warn("slot cache epoch bump failed", zap.Error(err))
		return
	}

	iter := c.client.Scan(ctx, 0, dayPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("slot cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("slot cache flush failed", zap.Error(err))
	}
}

var (
	_ SlotCache = (*Redis)(nil)
	_ SlotCache = Noop{}
)

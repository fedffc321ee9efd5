package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	snapshotKey = "agua:snapshot"
	// epochKey counts invalidations. It never expires.
	epochKey = "agua:snapshot:epoch"
)

var errGeneracionVencida = errors.New("cache: generación vencida")

// Redis shares the snapshot across server instances. Expiry is delegated
// to the key TTL. Redis failures degrade to a cache miss.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context) (*Snapshot, bool) {
	raw, err := r.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("cache: redis get failed")
		}
		return nil, false
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Warn().Err(err).Msg("cache: corrupt snapshot, ignoring")
		return nil, false
	}
	return &s, true
}

// Generation reads the epoch; a missing key is generation 0.
func (r *Redis) Generation(ctx context.Context) uint64 {
	gen, err := r.rdb.Get(ctx, epochKey).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Msg("cache: redis epoch read failed")
	}
	return gen
}

// Set writes the snapshot under WATCH on the epoch, so an Invalidate from
// any instance between the read and the write aborts it.
func (r *Redis) Set(ctx context.Context, s *Snapshot, gen uint64) bool {
	data, err := json.Marshal(s)
	if err != nil {
		log.Error().Err(err).Msg("cache: marshal snapshot")
		return false
	}
	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		actual, err := tx.Get(ctx, epochKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if actual != gen {
			return errGeneracionVencida
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, snapshotKey, data, r.ttl)
			return nil
		})
		return err
	}, epochKey)
	switch {
	case err == nil:
		return true
	case errors.Is(err, errGeneracionVencida), errors.Is(err, redis.TxFailedErr):
		log.Debug().Uint64("gen", gen).Msg("cache: snapshot vencido, no se guarda")
	default:
		log.Warn().Err(err).Msg("cache: redis set failed")
	}
	return false
}

// Invalidate bumps the epoch and drops the snapshot in one MULTI.
func (r *Redis) Invalidate(ctx context.Context) {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, epochKey)
		p.Del(ctx, snapshotKey)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("cache: redis invalidate failed")
	}
}

package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// A weekly report that could not be sent is parked in dlq:{queue}, newest
// first, instead of being dropped. The owner sees the backlog and the last
// failure on /health and can requeue an entry by hand once SMTP or the
// ledger is back:
//
//	redis-cli LMOVE dlq:jobs:reportes jobs:reportes LEFT LEFT
//
// The parked value is the job envelope itself plus the failure, so a moved
// entry is picked up by the pool again. Its attempt count carries over, so
// it gets one more try before it is parked again.

const DLQPrefix = "dlq:"

// Fallido is one parked job.
type Fallido struct {
	Job
	Motivo  string    `json:"motivo"`
	FalloEn time.Time `json:"fallo_en"`
}

// aparcar parks job with the reason it failed. A Redis error is logged and
// the job is lost; there is nowhere else to keep it.
func aparcar(ctx context.Context, rdb *redis.Client, queue string, job Job, motivo string) {
	data, err := json.Marshal(Fallido{Job: job, Motivo: motivo, FalloEn: time.Now().UTC()})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo serializar")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Str("type", job.Type).Msg("dlq: job perdido")
		return
	}
	log.Warn().Str("queue", queue).Str("type", job.Type).Int("attempts", job.Attempts).Str("motivo", motivo).Msg("dlq: reporte aparcado")
}

// EstadoDLQ is what /health reports about parked reports.
type EstadoDLQ struct {
	Pendientes int64    `json:"pendientes"`
	Ultimo     *Fallido `json:"ultimo,omitempty"`
}

// InspeccionarDLQ counts parked jobs of queue and decodes the newest one.
// An undecodable newest entry is counted but not shown.
func InspeccionarDLQ(ctx context.Context, rdb *redis.Client, queue string) (EstadoDLQ, error) {
	n, err := rdb.LLen(ctx, DLQPrefix+queue).Result()
	if err != nil || n == 0 {
		return EstadoDLQ{Pendientes: n}, err
	}
	raw, err := rdb.LIndex(ctx, DLQPrefix+queue, 0).Bytes()
	if err != nil {
		return EstadoDLQ{Pendientes: n}, err
	}
	return EstadoDLQ{Pendientes: n, Ultimo: decodificarFallido(raw)}, nil
}

func decodificarFallido(raw []byte) *Fallido {
	var f Fallido
	if err := json.Unmarshal(raw, &f); err != nil || f.Type == "" {
		return nil
	}
	return &f
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReportes = "jobs:reportes"

	JobReporteSemanal = "reporte_semanal"

	// MaxAttempts is how many times a job runs before it goes to the DLQ.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler runs one job type. A returned error schedules a retry.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReporteSemanal pushes a weekly-report e-mail job.
func (d *Dispatcher) EnqueueReporteSemanal(ctx context.Context, fecha, email string) error {
	return d.enqueue(ctx, QueueReportes, JobReporteSemanal, ReporteJobPayload{Fecha: fecha, Email: email})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming QueueReportes.
// Each goroutine blocks on BRPOP: zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueReportes).Result()
			if err != nil {
				esperarTrasError(ctx, id, err, reconexionEspera)
				continue
			}
			if len(result) < 2 {
				continue
			}
			queue, raw := result[0], result[1]
			switch next := processJob(ctx, handlers, raw); next.destino {
			case destinoReintento:
				if err := rdb.LPush(ctx, queue, next.encoded).Err(); err != nil {
					log.Error().Err(err).Str("queue", queue).Msg("worker: requeue failed")
				}
			case destinoDLQ:
				aparcar(ctx, rdb, queue, next.job, next.motivo)
			}
		}
	}
}

// reconexionEspera is the pause after a failed BRPOP before popping again.
const reconexionEspera = 2 * time.Second

// esperarTrasError pauses a worker after BRPOP fails for any reason other
// than its timeout, so an unreachable Redis does not spin the loop. Returns
// early when ctx is cancelled.
func esperarTrasError(ctx context.Context, id int, err error, espera time.Duration) {
	if errors.Is(err, redis.Nil) || ctx.Err() != nil {
		return
	}
	log.Warn().Err(err).Int("worker", id).Dur("espera", espera).Msg("worker: redis no disponible")
	select {
	case <-ctx.Done():
	case <-time.After(espera):
	}
}

type destino int

const (
	destinoHecho destino = iota
	destinoReintento
	destinoDLQ
)

type resultado struct {
	destino destino
	job     Job
	encoded []byte
	motivo  string
}

// processJob runs raw through its handler and decides where it goes next.
func processJob(ctx context.Context, handlers map[string]Handler, raw string) resultado {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("worker: failed to unmarshal job")
		return resultado{destino: destinoDLQ, job: Job{Type: "desconocido", Payload: json.RawMessage(fmt.Sprintf("%q", raw))}, motivo: "payload ilegible"}
	}
	h, ok := handlers[job.Type]
	if !ok {
		return resultado{destino: destinoDLQ, job: job, motivo: "tipo de job sin handler"}
	}

	job.Attempts++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		log.Info().Str("type", job.Type).Int("attempts", job.Attempts).Msg("job processed")
		return resultado{destino: destinoHecho, job: job}
	}
	log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed")
	if job.Attempts >= MaxAttempts {
		return resultado{destino: destinoDLQ, job: job, motivo: err.Error()}
	}
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		return resultado{destino: destinoDLQ, job: job, motivo: mErr.Error()}
	}
	return resultado{destino: destinoReintento, job: job, encoded: encoded}
}

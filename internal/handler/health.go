package handler

import (
	"context"
	"net/http"
	"time"

	"aguacontrol/internal/repository"
	"aguacontrol/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health returns a JSON health check response.
// Checks the ledger store and, when configured, Redis; never exposes
// credentials or internals.
func Health(ledger repository.LedgerRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ledgerStatus := "connected"
		if ledger.Ping(ctx) != nil {
			ledgerStatus = "error"
		}

		body := gin.H{"ledger": ledgerStatus}
		status := http.StatusOK
		if ledgerStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		if rdb == nil {
			body["redis"] = "disabled"
		} else if rdb.Ping(ctx).Err() != nil {
			body["redis"] = "error"
			status = http.StatusServiceUnavailable
		} else {
			body["redis"] = "connected"
			if estado, err := worker.InspeccionarDLQ(ctx, rdb, worker.QueueReportes); err == nil {
				body["dlq"] = estado
			}
		}

		body["ok"] = status == http.StatusOK
		c.JSON(status, body)
	}
}

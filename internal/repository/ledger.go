package repository

import (
	"context"
	"errors"
	"fmt"

	"aguacontrol/internal/infra"
	"aguacontrol/internal/model"
)

// ErrSinConexion marks every failure to reach the ledger store. Callers
// treat it as transient: reads are retried, writes are surfaced for a
// manual retry.
var ErrSinConexion = errors.New("sin conexión con el almacén")

// LedgerRepository is the persistence boundary: read-all and append-row over
// the three collections. Reads return rows in store order.
type LedgerRepository interface {
	ListProductos(ctx context.Context) ([]model.FilaCatalogo, error)
	ListCargas(ctx context.Context) ([]model.Carga, error)
	ListVentas(ctx context.Context) ([]model.Venta, error)
	// AppendVentas writes every row of one sale in a single store call.
	AppendVentas(ctx context.Context, ventas []model.Venta) error
	AppendCarga(ctx context.Context, c model.Carga) error
	// Ping checks connectivity for the health endpoint.
	Ping(ctx context.Context) error
}

// guarded runs fn through the breaker and tags any failure as ErrSinConexion.
func guarded(cb *infra.Breaker, op string, fn func() error) error {
	run := fn
	if cb != nil {
		run = func() error { return cb.Execute(fn) }
	}
	if err := run(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinConexion, op, err)
	}
	return nil
}

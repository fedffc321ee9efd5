package service

import (
	"context"
	"fmt"
	"time"

	"aguacontrol/internal/cache"
	"aguacontrol/internal/model"
	"aguacontrol/internal/repository"

	"github.com/shopspring/decimal"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubLedger is an in-memory LedgerRepository.
type stubLedger struct {
	productos []model.FilaCatalogo
	cargas    []model.Carga
	ventas    []model.Venta

	lecturas       int // ListProductos calls
	fallarLecturas int // next N reads fail
	fallarAppend   bool
	appends        [][]model.Venta
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		productos: []model.FilaCatalogo{
			{Producto: "Botellón 20L", PrecioActual: "1.5", Litros: "20"},
			{Producto: "Botella 5L", PrecioActual: "0,5", Litros: "5"},
		},
	}
}

func errSinConexion(op string) error {
	return fmt.Errorf("%w: %s: timeout", repository.ErrSinConexion, op)
}

func (s *stubLedger) ListProductos(_ context.Context) ([]model.FilaCatalogo, error) {
	s.lecturas++
	if s.fallarLecturas > 0 {
		s.fallarLecturas--
		return nil, errSinConexion("leyendo catalogo")
	}
	return s.productos, nil
}

func (s *stubLedger) ListCargas(_ context.Context) ([]model.Carga, error) { return s.cargas, nil }

func (s *stubLedger) ListVentas(_ context.Context) ([]model.Venta, error) { return s.ventas, nil }

func (s *stubLedger) AppendVentas(_ context.Context, ventas []model.Venta) error {
	if s.fallarAppend {
		return errSinConexion("registrando venta")
	}
	s.appends = append(s.appends, ventas)
	s.ventas = append(s.ventas, ventas...)
	return nil
}

func (s *stubLedger) AppendCarga(_ context.Context, c model.Carga) error {
	if s.fallarAppend {
		return errSinConexion("registrando carga")
	}
	s.cargas = append(s.cargas, c)
	return nil
}

func (s *stubLedger) Ping(_ context.Context) error { return nil }

func newTestLedgerService(repo repository.LedgerRepository) LedgerService {
	return NewLedgerService(repo, cache.NewMemory(time.Minute), 2, 0)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// miercoles is Wednesday 2024-03-13 10:30 in UTC.
var miercoles = time.Date(2024, time.March, 13, 10, 30, 0, 0, time.UTC)

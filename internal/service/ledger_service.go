package service

import (
	"context"
	"time"

	"aguacontrol/internal/cache"
	"aguacontrol/internal/repository"

	"github.com/rs/zerolog/log"
)

// LedgerService reads the three collections through the snapshot cache.
type LedgerService interface {
	// Snapshot returns a fresh-enough view of the ledger. On a store failure
	// it drops the cache and retries before giving up with ErrSinConexion.
	Snapshot(ctx context.Context) (*cache.Snapshot, error)
	// Invalidar forces the next Snapshot to hit the store. Called after
	// every successful write and on explicit refresh.
	Invalidar(ctx context.Context)
}

type ledgerService struct {
	repo       repository.LedgerRepository
	cache      cache.SnapshotCache
	reintentos int
	espera     time.Duration
	now        func() time.Time
}

func NewLedgerService(repo repository.LedgerRepository, c cache.SnapshotCache, reintentos int, espera time.Duration) LedgerService {
	if reintentos < 0 {
		reintentos = 0
	}
	return &ledgerService{repo: repo, cache: c, reintentos: reintentos, espera: espera, now: time.Now}
}

func (s *ledgerService) Snapshot(ctx context.Context) (*cache.Snapshot, error) {
	if snap, ok := s.cache.Get(ctx); ok {
		return snap, nil
	}

	var lastErr error
	for intento := 0; intento <= s.reintentos; intento++ {
		if intento > 0 {
			s.cache.Invalidate(ctx)
			log.Warn().Err(lastErr).Int("intento", intento).Msg("ledger: reconectando")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.espera):
			}
		}
		gen := s.cache.Generation(ctx)
		snap, err := s.cargar(ctx)
		if err == nil {
			// Set refuses snap when a write invalidated the cache meanwhile.
			s.cache.Set(ctx, snap, gen)
			return snap, nil
		}
		lastErr = err
	}
	log.Error().Err(lastErr).Msg("ledger: lectura fallida")
	return nil, lastErr
}

func (s *ledgerService) cargar(ctx context.Context) (*cache.Snapshot, error) {
	catalogo, err := s.repo.ListProductos(ctx)
	if err != nil {
		return nil, err
	}
	cargas, err := s.repo.ListCargas(ctx)
	if err != nil {
		return nil, err
	}
	ventas, err := s.repo.ListVentas(ctx)
	if err != nil {
		return nil, err
	}
	return &cache.Snapshot{Catalogo: catalogo, Cargas: cargas, Ventas: ventas, FetchedAt: s.now()}, nil
}

func (s *ledgerService) Invalidar(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

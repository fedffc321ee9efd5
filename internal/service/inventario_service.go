package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/model"
	"aguacontrol/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InventarioService covers the tank: derived stock and water deliveries.
type InventarioService interface {
	Stock(ctx context.Context) (*dto.StockResponse, error)
	RegistrarCarga(ctx context.Context, req dto.RegistrarCargaRequest) (*dto.CargaResponse, error)
	// ListarCargas returns the delivery history, newest first.
	ListarCargas(ctx context.Context) (*dto.CargasListResponse, error)
}

type inventarioService struct {
	ledger     LedgerService
	repo       repository.LedgerRepository
	umbralBajo int
	loc        *time.Location
	now        func() time.Time
}

func NewInventarioService(ledger LedgerService, repo repository.LedgerRepository, umbralBajo int, loc *time.Location) InventarioService {
	if loc == nil {
		loc = time.UTC
	}
	return &inventarioService{ledger: ledger, repo: repo, umbralBajo: umbralBajo, loc: loc, now: time.Now}
}

func (s *inventarioService) Stock(ctx context.Context) (*dto.StockResponse, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stock := CalcularStock(snap.Cargas, snap.Ventas)
	return &dto.StockResponse{Litros: stock, Nivel: NivelStock(stock, s.umbralBajo)}, nil
}

func (s *inventarioService) RegistrarCarga(ctx context.Context, req dto.RegistrarCargaRequest) (*dto.CargaResponse, error) {
	if !req.Litros.IsPositive() {
		return nil, &ErrValidacion{Campo: "litros", Mensaje: "Los litros deben ser mayores a 0"}
	}
	ahora := s.now().In(s.loc)
	carga := model.Carga{
		Fecha:  strings.TrimSpace(req.Fecha),
		Hora:   strings.TrimSpace(req.Hora),
		Litros: req.Litros,
		Costo:  decimal.Zero,
		Notas:  strings.TrimSpace(req.Notas),
	}
	if carga.Fecha == "" {
		carga.Fecha = ahora.Format(model.FormatoFecha)
	}
	if carga.Hora == "" {
		carga.Hora = ahora.Format(model.FormatoHora)
	}

	if err := s.repo.AppendCarga(ctx, carga); err != nil {
		log.Error().Err(err).Str("litros", carga.Litros.String()).Msg("carga: no se pudo registrar")
		return nil, err
	}
	s.ledger.Invalidar(ctx)
	log.Info().Str("fecha", carga.Fecha).Str("litros", carga.Litros.String()).Msg("carga registrada")
	return cargaResponse(carga), nil
}

func (s *inventarioService) ListarCargas(ctx context.Context) (*dto.CargasListResponse, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	cargas := append([]model.Carga(nil), snap.Cargas...)
	sort.SliceStable(cargas, func(i, j int) bool {
		ci, cj := s.clave(cargas[i]), s.clave(cargas[j])
		if ci.fecha.Equal(cj.fecha) {
			return ci.hora > cj.hora
		}
		return ci.fecha.After(cj.fecha)
	})

	resp := &dto.CargasListResponse{Data: make([]dto.CargaResponse, 0, len(cargas)), Total: len(cargas)}
	for _, c := range cargas {
		resp.Data = append(resp.Data, *cargaResponse(c))
	}
	return resp, nil
}

type claveCarga struct {
	fecha time.Time
	hora  string
}

// clave orders deliveries; unreadable dates sort last.
func (s *inventarioService) clave(c model.Carga) claveCarga {
	f, _ := model.ParseFecha(c.Fecha, s.loc)
	return claveCarga{fecha: f, hora: normalizarHora(c.Hora)}
}

// normalizarHora zero-pads "9:05" so times compare as text.
func normalizarHora(h string) string {
	partes := strings.Split(strings.TrimSpace(h), ":")
	for i, p := range partes {
		if len(p) == 1 {
			partes[i] = "0" + p
		}
	}
	return strings.Join(partes, ":")
}

func cargaResponse(c model.Carga) *dto.CargaResponse {
	return &dto.CargaResponse{Fecha: c.Fecha, Hora: c.Hora, Litros: c.Litros, Notas: c.Notas}
}

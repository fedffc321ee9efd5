package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/infra"
	"aguacontrol/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrEnvioNoDisponible is returned when no mail queue or recipient is configured.
var ErrEnvioNoDisponible = errors.New("envío de reportes no configurado")

// EnvioReportes queues the weekly report e-mail.
type EnvioReportes interface {
	EnqueueReporteSemanal(ctx context.Context, fecha, email string) error
}

type ReporteService interface {
	Diario(ctx context.Context, fecha string) (*dto.ReporteDiarioResponse, error)
	Semanal(ctx context.Context, fecha string) (*dto.ReporteSemanalResponse, error)
	SemanalPDF(ctx context.Context, fecha string) ([]byte, *dto.ReporteSemanalResponse, error)
	EnviarSemanal(ctx context.Context, req dto.EnviarReporteRequest) error
}

type reporteService struct {
	ledger       LedgerService
	envio        EnvioReportes // nil disables EnviarSemanal
	emailDefecto string
	loc          *time.Location
	now          func() time.Time
}

func NewReporteService(ledger LedgerService, envio EnvioReportes, emailDefecto string, loc *time.Location) ReporteService {
	if loc == nil {
		loc = time.UTC
	}
	return &reporteService{ledger: ledger, envio: envio, emailDefecto: emailDefecto, loc: loc, now: time.Now}
}

// dia resolves the ?fecha= filter; empty means today.
func (s *reporteService) dia(fecha string) (time.Time, error) {
	if strings.TrimSpace(fecha) == "" {
		y, m, d := s.now().In(s.loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, s.loc), nil
	}
	f, ok := model.ParseFecha(fecha, s.loc)
	if !ok {
		return time.Time{}, &ErrValidacion{Campo: "fecha", Mensaje: "Fecha inválida"}
	}
	return f, nil
}

func (s *reporteService) Diario(ctx context.Context, fecha string) (*dto.ReporteDiarioResponse, error) {
	dia, err := s.dia(fecha)
	if err != nil {
		return nil, err
	}
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var ventas []model.Venta
	for _, v := range snap.Ventas {
		if enRango(v.Fecha, dia, dia, s.loc) {
			ventas = append(ventas, v)
		}
	}

	resp := &dto.ReporteDiarioResponse{
		Fecha:  dia.Format(model.FormatoFecha),
		Montos: montosDTO(SumarPorCategoria(ventas)),
		Ventas: make([]dto.FilaVentaResponse, 0, len(ventas)),
	}
	for _, v := range ventas {
		resp.Ventas = append(resp.Ventas, dto.FilaVentaResponse{
			Hora:           v.Hora,
			DetallesCompra: v.DetallesCompra,
			Monto:          v.Monto,
			MetodoPago:     v.MetodoPago,
		})
	}
	return resp, nil
}

func (s *reporteService) Semanal(ctx context.Context, fecha string) (*dto.ReporteSemanalResponse, error) {
	dia, err := s.dia(fecha)
	if err != nil {
		return nil, err
	}
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	inicio, fin := RangoSemana(dia)

	var ventas []model.Venta
	var detalles []string
	litrosVendidos := decimal.Zero
	for _, v := range snap.Ventas {
		if !enRango(v.Fecha, inicio, fin, s.loc) {
			continue
		}
		ventas = append(ventas, v)
		detalles = append(detalles, v.DetallesCompra)
		litrosVendidos = litrosVendidos.Add(v.TotalLitros)
	}

	cargas := 0
	litrosCargados := decimal.Zero
	for _, c := range snap.Cargas {
		if enRango(c.Fecha, inicio, fin, s.loc) {
			cargas++
			litrosCargados = litrosCargados.Add(c.Litros)
		}
	}

	conteos := ContarProductos(detalles)
	productos := make([]dto.ConteoProducto, 0, len(conteos))
	for _, c := range conteos {
		productos = append(productos, dto.ConteoProducto{Producto: c.Producto, Unidades: c.Unidades})
	}

	return &dto.ReporteSemanalResponse{
		Inicio:         inicio.Format(model.FormatoFecha),
		Fin:            fin.Format(model.FormatoFecha),
		Etiqueta:       EtiquetaSemana(inicio, fin),
		Montos:         montosDTO(SumarPorCategoria(ventas)),
		Productos:      productos,
		LitrosVendidos: litrosVendidos,
		Cargas:         cargas,
		LitrosCargados: litrosCargados,
		Ventas:         len(ventas),
	}, nil
}

func (s *reporteService) SemanalPDF(ctx context.Context, fecha string) ([]byte, *dto.ReporteSemanalResponse, error) {
	rep, err := s.Semanal(ctx, fecha)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := infra.EscribirReporteSemanalPDF(&buf, rep); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), rep, nil
}

func (s *reporteService) EnviarSemanal(ctx context.Context, req dto.EnviarReporteRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = s.emailDefecto
	}
	if s.envio == nil || email == "" {
		return ErrEnvioNoDisponible
	}
	dia, err := s.dia(req.Fecha)
	if err != nil {
		return err
	}
	fecha := dia.Format(model.FormatoFecha)
	if err := s.envio.EnqueueReporteSemanal(ctx, fecha, email); err != nil {
		log.Error().Err(err).Str("fecha", fecha).Msg("reporte: no se pudo encolar el envío")
		return err
	}
	log.Info().Str("fecha", fecha).Str("to", email).Msg("reporte semanal encolado")
	return nil
}

func montosDTO(m Montos) dto.MontosPorCategoria {
	return dto.MontosPorCategoria{
		PagoMovil:    m.De(model.CategoriaPagoMovil),
		EfectivoBs:   m.De(model.CategoriaEfectivoBs),
		PuntoDeVenta: m.De(model.CategoriaPuntoDeVenta),
		Divisas:      m.De(model.CategoriaDivisas),
	}
}

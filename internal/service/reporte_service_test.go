package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnvio struct {
	fecha, email string
	err          error
}

func (e *stubEnvio) EnqueueReporteSemanal(_ context.Context, fecha, email string) error {
	e.fecha, e.email = fecha, email
	return e.err
}

func ledgerSemana() *stubLedger {
	repo := newStubLedger()
	repo.ventas = []model.Venta{
		{Fecha: "2024-03-10", DetallesCompra: "5x Botella 5L", Monto: dec("2.5"), MetodoPago: "Efectivo Bs", TotalLitros: dec("25")},
		{Fecha: "2024-03-11", Hora: "09:00:00", DetallesCompra: "2x Botellón 20L", Monto: dec("3"), MetodoPago: "Pago Móvil", TotalLitros: dec("40")},
		{Fecha: "2024-03-13", Hora: "10:00:00", DetallesCompra: "1x Botellón 20L", Monto: dec("1"), MetodoPago: "Efectivo Bs", TotalLitros: dec("20")},
		{Fecha: "2024-03-13", Hora: "10:00:00", DetallesCompra: model.DetalleComplemento, Monto: dec("0.5"), MetodoPago: "Divisas ($)"},
		{Fecha: "2024-03-17", Hora: "18:00:00", DetallesCompra: "1x Botella 5L", Monto: dec("0.5"), MetodoPago: "Punto de Venta", TotalLitros: dec("5")},
	}
	repo.cargas = []model.Carga{
		{Fecha: "2024-03-09", Litros: dec("1000")},
		{Fecha: "2024-03-12", Litros: dec("2000")},
	}
	return repo
}

func newTestReportes(repo *stubLedger, envio EnvioReportes, email string) *reporteService {
	svc := NewReporteService(newTestLedgerService(repo), envio, email, time.UTC).(*reporteService)
	svc.now = func() time.Time { return miercoles }
	return svc
}

func TestDiario(t *testing.T) {
	svc := newTestReportes(ledgerSemana(), nil, "")

	resp, err := svc.Diario(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", resp.Fecha)
	require.Len(t, resp.Ventas, 2)
	assert.True(t, dec("1").Equal(resp.Montos.EfectivoBs))
	assert.True(t, dec("0.5").Equal(resp.Montos.Divisas))
	assert.True(t, resp.Montos.PagoMovil.IsZero())
}

func TestDiario_FechaInvalida(t *testing.T) {
	_, err := newTestReportes(ledgerSemana(), nil, "").Diario(context.Background(), "ayer")
	var ve *ErrValidacion
	assert.True(t, errors.As(err, &ve))
}

func TestSemanal(t *testing.T) {
	resp, err := newTestReportes(ledgerSemana(), nil, "").Semanal(context.Background(), "2024-03-13")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-11", resp.Inicio)
	assert.Equal(t, "2024-03-17", resp.Fin)
	assert.Equal(t, "11/03 al 17/03", resp.Etiqueta)
	assert.Equal(t, 4, resp.Ventas)
	assert.True(t, dec("65").Equal(resp.LitrosVendidos))
	assert.Equal(t, 1, resp.Cargas)
	assert.True(t, dec("2000").Equal(resp.LitrosCargados))
	assert.Equal(t, []dto.ConteoProducto{
		{Producto: "Botellón 20L", Unidades: 3},
		{Producto: "Botella 5L", Unidades: 1},
	}, resp.Productos)
	assert.True(t, dec("3").Equal(resp.Montos.PagoMovil))
	assert.True(t, dec("0.5").Equal(resp.Montos.PuntoDeVenta))
}

func TestSemanalPDF(t *testing.T) {
	pdf, rep, err := newTestReportes(ledgerSemana(), nil, "").SemanalPDF(context.Background(), "2024-03-13")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", rep.Inicio)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")
}

func TestEnviarSemanal(t *testing.T) {
	envio := &stubEnvio{}
	svc := newTestReportes(ledgerSemana(), envio, "dueno@example.com")

	require.NoError(t, svc.EnviarSemanal(context.Background(), dto.EnviarReporteRequest{}))
	assert.Equal(t, "2024-03-13", envio.fecha)
	assert.Equal(t, "dueno@example.com", envio.email)

	require.NoError(t, svc.EnviarSemanal(context.Background(), dto.EnviarReporteRequest{Fecha: "2024-03-01", Email: "otro@example.com"}))
	assert.Equal(t, "2024-03-01", envio.fecha)
	assert.Equal(t, "otro@example.com", envio.email)
}

func TestEnviarSemanal_SinConfigurar(t *testing.T) {
	err := newTestReportes(ledgerSemana(), nil, "dueno@example.com").EnviarSemanal(context.Background(), dto.EnviarReporteRequest{})
	assert.ErrorIs(t, err, ErrEnvioNoDisponible)

	err = newTestReportes(ledgerSemana(), &stubEnvio{}, "").EnviarSemanal(context.Background(), dto.EnviarReporteRequest{})
	assert.ErrorIs(t, err, ErrEnvioNoDisponible)
}

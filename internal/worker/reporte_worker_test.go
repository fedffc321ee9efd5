package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"aguacontrol/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBuilder struct {
	rep   *dto.ReporteSemanalResponse
	err   error
	fecha string
}

func (b *stubBuilder) Semanal(_ context.Context, fecha string) (*dto.ReporteSemanalResponse, error) {
	b.fecha = fecha
	return b.rep, b.err
}

type stubMailer struct {
	to, subject, pdfPath string
	err                  error
}

func (m *stubMailer) EnviarReporte(to, subject, _ string, pdfPath string) error {
	m.to, m.subject, m.pdfPath = to, subject, pdfPath
	return m.err
}

func semana() *dto.ReporteSemanalResponse {
	return &dto.ReporteSemanalResponse{
		Inicio:         "2024-03-11",
		Fin:            "2024-03-17",
		Etiqueta:       "11/03 al 17/03",
		Productos:      []dto.ConteoProducto{{Producto: "Botellón 20L", Unidades: 3}},
		LitrosVendidos: decimal.NewFromInt(60),
		Ventas:         2,
	}
}

func payload(t *testing.T, p ReporteJobPayload) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return b
}

func TestReporteWorker_SendsPDF(t *testing.T) {
	b := &stubBuilder{rep: semana()}
	m := &stubMailer{}
	w := NewReporteWorker(b, m, t.TempDir())

	err := w.Process(context.Background(), payload(t, ReporteJobPayload{Fecha: "2024-03-13", Email: "dueno@example.com"}))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-13", b.fecha)
	assert.Equal(t, "dueno@example.com", m.to)
	assert.Contains(t, m.subject, "11/03 al 17/03")
	info, err := os.Stat(m.pdfPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestReporteWorker_BuildErrorIsRetried(t *testing.T) {
	w := NewReporteWorker(&stubBuilder{err: errors.New("sin conexión")}, &stubMailer{}, t.TempDir())
	err := w.Process(context.Background(), payload(t, ReporteJobPayload{Fecha: "2024-03-13", Email: "a@b.com"}))
	assert.Error(t, err)
}

func TestReporteWorker_EmptyEmailIsDropped(t *testing.T) {
	m := &stubMailer{}
	w := NewReporteWorker(&stubBuilder{rep: semana()}, m, t.TempDir())
	assert.NoError(t, w.Process(context.Background(), payload(t, ReporteJobPayload{Fecha: "2024-03-13"})))
	assert.Empty(t, m.to)
}

func TestInlineDispatcher_RunsWorker(t *testing.T) {
	m := &stubMailer{}
	d := NewInlineDispatcher(NewReporteWorker(&stubBuilder{rep: semana()}, m, t.TempDir()))
	d.run = func(f func()) { f() }

	require.NoError(t, d.EnqueueReporteSemanal(context.Background(), "2024-03-13", "dueno@example.com"))
	assert.Equal(t, "dueno@example.com", m.to)
}

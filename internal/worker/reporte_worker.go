package worker

// reporte_worker.go
// Builds the weekly report PDF and mails it to the configured recipient.

import (
	"context"
	"encoding/json"
	"fmt"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReporteJobPayload is the job envelope sent to QueueReportes.
type ReporteJobPayload struct {
	Fecha string `json:"fecha"` // any day of the week, 2006-01-02
	Email string `json:"email"`
}

// ReporteBuilder computes the weekly view for the job's date.
type ReporteBuilder interface {
	Semanal(ctx context.Context, fecha string) (*dto.ReporteSemanalResponse, error)
}

// ReporteMailer is satisfied by *infra.Mailer.
type ReporteMailer interface {
	EnviarReporte(destino, asunto, cuerpo, pdfPath string) error
}

type ReporteWorker struct {
	reportes    ReporteBuilder
	mailer      ReporteMailer
	storagePath string
}

func NewReporteWorker(reportes ReporteBuilder, mailer ReporteMailer, storagePath string) *ReporteWorker {
	return &ReporteWorker{reportes: reportes, mailer: mailer, storagePath: storagePath}
}

// Process renders and sends one weekly report. Bad payloads are dropped
// without retry; store and SMTP failures are returned for retry.
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return nil
	}
	if payload.Email == "" {
		log.Warn().Msg("reporte_worker: empty email: skipping")
		return nil
	}

	rep, err := w.reportes.Semanal(ctx, payload.Fecha)
	if err != nil {
		return fmt.Errorf("reporte_worker: build report: %w", err)
	}
	pdfPath, err := infra.GuardarReporteSemanalPDF(rep, w.storagePath)
	if err != nil {
		return err
	}

	subject := "Reporte semanal " + rep.Etiqueta
	body := fmt.Sprintf("Adjunto el reporte de la semana %s.\nVentas: %d\nLitros vendidos: %s\n",
		rep.Etiqueta, rep.Ventas, rep.LitrosVendidos.StringFixed(0))
	if err := w.mailer.EnviarReporte(payload.Email, subject, body, pdfPath); err != nil {
		return fmt.Errorf("reporte_worker: send: %w", err)
	}
	log.Info().Str("to", payload.Email).Str("semana", rep.Etiqueta).Msg("reporte_worker: reporte enviado")
	return nil
}

// InlineDispatcher runs report jobs in-process when no Redis is configured.
// There is no retry: a failure is only logged.
type InlineDispatcher struct {
	worker *ReporteWorker
	run    func(func()) // how the job is started; a goroutine unless replaced
}

func NewInlineDispatcher(w *ReporteWorker) *InlineDispatcher {
	return &InlineDispatcher{worker: w, run: func(f func()) { go f() }}
}

func (d *InlineDispatcher) EnqueueReporteSemanal(_ context.Context, fecha, email string) error {
	raw, err := json.Marshal(ReporteJobPayload{Fecha: fecha, Email: email})
	if err != nil {
		return err
	}
	d.run(func() {
		if err := d.worker.Process(context.Background(), raw); err != nil {
			log.Error().Err(err).Str("fecha", fecha).Msg("reporte_worker: envío fallido")
		}
	})
	return nil
}

package infra

// pdf.go: weekly report PDF using go-pdf/fpdf. A4 portrait:
//   - Title and window label
//   - Amounts per payment category
//   - Volume sold and deliveries received
//   - Units per product

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"aguacontrol/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// EscribirReporteSemanalPDF renders r as a PDF into w.
func EscribirReporteSemanalPDF(w io.Writer, r *dto.ReporteSemanalResponse) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252, for ñ/ó in product names

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Agua Control - Reporte Semanal"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Semana del "+r.Etiqueta), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colL := contentW * 0.65
	colR := contentW * 0.35
	fila := func(label, valor string) {
		pdf.CellFormat(colL, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(colR, 6, tr(valor), "", 1, "R", false, 0, "")
	}
	seccion := func(titulo string) {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(titulo), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}

	// ── Ingresos ─────────────────────────────────────────────────────────────
	seccion("Ingresos")
	fila("Pago Móvil", "Bs "+r.Montos.PagoMovil.StringFixed(2))
	fila("Efectivo Bs", "Bs "+r.Montos.EfectivoBs.StringFixed(2))
	fila("Punto de Venta", "Bs "+r.Montos.PuntoDeVenta.StringFixed(2))
	fila("Divisas", "$ "+r.Montos.Divisas.StringFixed(2))

	// ── Tanque ───────────────────────────────────────────────────────────────
	seccion("Tanque")
	fila("Litros vendidos", litros(r.LitrosVendidos))
	fila(fmt.Sprintf("Cargas recibidas (%d)", r.Cargas), litros(r.LitrosCargados))
	fila("Ventas registradas", fmt.Sprintf("%d", r.Ventas))

	// ── Productos ────────────────────────────────────────────────────────────
	seccion("Unidades por producto")
	if len(r.Productos) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(contentW, 6, "Sin ventas en la semana", "", 1, "L", false, 0, "")
	}
	for _, p := range r.Productos {
		fila(p.Producto, fmt.Sprintf("%d", p.Unidades))
	}

	return pdf.Output(w)
}

// GuardarReporteSemanalPDF writes the report to storagePath (created if
// needed) and returns the file path.
func GuardarReporteSemanalPDF(r *dto.ReporteSemanalResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("reporte_semanal_%s.pdf", r.Inicio))
	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	defer f.Close()
	if err := EscribirReporteSemanalPDF(f, r); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func litros(d decimal.Decimal) string {
	return d.StringFixed(0) + " L"
}

package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"aguacontrol/internal/infra"
	"aguacontrol/internal/model"

	"github.com/shopspring/decimal"
	"google.golang.org/api/sheets/v4"
)

// SheetValues is the slice of the Sheets API the ledger needs. Rows come
// back as the API hands them: a header row first, then data rows whose
// cells are string, float64 or bool.
type SheetValues interface {
	Get(ctx context.Context, rango string) ([][]interface{}, error)
	Append(ctx context.Context, rango string, filas [][]interface{}) error
}

type sheetsValues struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetValues adapts a Sheets client bound to one spreadsheet.
func NewSheetValues(svc *sheets.Service, spreadsheetID string) SheetValues {
	return &sheetsValues{svc: svc, spreadsheetID: spreadsheetID}
}

func (v *sheetsValues) Get(ctx context.Context, rango string) ([][]interface{}, error) {
	resp, err := v.svc.Spreadsheets.Values.Get(v.spreadsheetID, rango).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (v *sheetsValues) Append(ctx context.Context, rango string, filas [][]interface{}) error {
	// RAW keeps dates as typed text so reads never depend on sheet locale.
	_, err := v.svc.Spreadsheets.Values.Append(v.spreadsheetID, rango, &sheets.ValueRange{Values: filas}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}

// SheetRanges names the worksheet (or A1 range) of each collection.
type SheetRanges struct {
	Catalogo string
	Cargas   string
	Ventas   string
}

type sheetsLedger struct {
	values SheetValues
	ranges SheetRanges
	cb     *infra.Breaker
}

// NewSheetsLedger returns a LedgerRepository over a spreadsheet.
func NewSheetsLedger(values SheetValues, ranges SheetRanges, cb *infra.Breaker) LedgerRepository {
	return &sheetsLedger{values: values, ranges: ranges, cb: cb}
}

func (r *sheetsLedger) read(ctx context.Context, rango string) (*tabla, error) {
	var raw [][]interface{}
	err := guarded(r.cb, "leyendo "+rango, func() error {
		var err error
		raw, err = r.values.Get(ctx, rango)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newTabla(raw), nil
}

func (r *sheetsLedger) ListProductos(ctx context.Context) ([]model.FilaCatalogo, error) {
	t, err := r.read(ctx, r.ranges.Catalogo)
	if err != nil {
		return nil, err
	}
	cProd := t.columna(0, "Producto")
	cPrecio := t.columna(1, "Precio_Actual", "Precio")
	cLitros := t.columna(2, "Litros")

	out := make([]model.FilaCatalogo, 0, len(t.filas))
	for _, f := range t.filas {
		nombre := t.celda(f, cProd)
		if nombre == "" {
			continue
		}
		out = append(out, model.FilaCatalogo{
			Producto:     nombre,
			PrecioActual: t.celda(f, cPrecio),
			Litros:       t.celda(f, cLitros),
		})
	}
	return out, nil
}

func (r *sheetsLedger) ListCargas(ctx context.Context) ([]model.Carga, error) {
	t, err := r.read(ctx, r.ranges.Cargas)
	if err != nil {
		return nil, err
	}
	cFecha := t.columna(0, "Fecha")
	cHora := t.columna(1, "Hora")
	cLitros := t.columna(2, "Litros")
	cCosto := t.columna(3, "Costo", "Monto")
	cNotas := t.columna(4, "Notas", "Chofer", "Observaciones")

	out := make([]model.Carga, 0, len(t.filas))
	for _, f := range t.filas {
		litros, _ := model.ParseDecimal(t.celda(f, cLitros))
		costo, _ := model.ParseDecimal(t.celda(f, cCosto))
		out = append(out, model.Carga{
			Fecha:  t.celda(f, cFecha),
			Hora:   t.celda(f, cHora),
			Litros: litros,
			Costo:  costo,
			Notas:  t.celda(f, cNotas),
		})
	}
	return out, nil
}

func (r *sheetsLedger) ListVentas(ctx context.Context) ([]model.Venta, error) {
	t, err := r.read(ctx, r.ranges.Ventas)
	if err != nil {
		return nil, err
	}
	cFecha := t.columna(0, "Fecha")
	cHora := t.columna(1, "Hora")
	cDetalle := t.columna(2, "Detalles_Compra")
	cMonto := t.columna(3, "Monto")
	cMoneda := t.columna(4, "Moneda")
	cMetodo := t.columna(5, "Metodo_Pago")
	cRef := t.columna(6, "Referencia")
	cLitros := t.columna(7, "Total_Litros")

	out := make([]model.Venta, 0, len(t.filas))
	for _, f := range t.filas {
		monto, _ := model.ParseDecimal(t.celda(f, cMonto))
		litros, _ := model.ParseDecimal(t.celda(f, cLitros))
		out = append(out, model.Venta{
			Fecha:          t.celda(f, cFecha),
			Hora:           t.celda(f, cHora),
			DetallesCompra: t.celda(f, cDetalle),
			Monto:          monto,
			Moneda:         t.celda(f, cMoneda),
			MetodoPago:     t.celda(f, cMetodo),
			Referencia:     t.celda(f, cRef),
			TotalLitros:    litros,
		})
	}
	return out, nil
}

func (r *sheetsLedger) AppendVentas(ctx context.Context, ventas []model.Venta) error {
	if len(ventas) == 0 {
		return nil
	}
	filas := make([][]interface{}, 0, len(ventas))
	for _, v := range ventas {
		filas = append(filas, []interface{}{
			v.Fecha, v.Hora, v.DetallesCompra, numero(v.Monto), v.Moneda,
			v.MetodoPago, v.Referencia, numero(v.TotalLitros),
		})
	}
	return guarded(r.cb, "registrando venta", func() error {
		return r.values.Append(ctx, r.ranges.Ventas, filas)
	})
}

func (r *sheetsLedger) AppendCarga(ctx context.Context, c model.Carga) error {
	fila := []interface{}{c.Fecha, c.Hora, numero(c.Litros), numero(c.Costo), c.Notas}
	return guarded(r.cb, "registrando carga", func() error {
		return r.values.Append(ctx, r.ranges.Cargas, [][]interface{}{fila})
	})
}

func (r *sheetsLedger) Ping(ctx context.Context) error {
	return guarded(r.cb, "ping", func() error {
		_, err := r.values.Get(ctx, nombreHoja(r.ranges.Catalogo)+"!A1:A1")
		return err
	})
}

// nombreHoja strips any A1 suffix: "Configuracion!A:C" → "Configuracion".
func nombreHoja(rango string) string {
	hoja, _, _ := strings.Cut(rango, "!")
	return hoja
}

// numero sends amounts as JSON numbers so the sheet can sum them.
func numero(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ── tabla ─────────────────────────────────────────────────────────────────────
// Header-addressed view over raw worksheet values. Columns are located by
// header name, falling back to their historical position when a header has
// been renamed or is missing.

type tabla struct {
	headers map[string]int
	filas   [][]interface{}
}

func newTabla(raw [][]interface{}) *tabla {
	t := &tabla{headers: map[string]int{}}
	if len(raw) == 0 {
		return t
	}
	for i, h := range raw[0] {
		t.headers[strings.ToLower(strings.TrimSpace(texto(h)))] = i
	}
	for _, f := range raw[1:] {
		if !filaVacia(f) {
			t.filas = append(t.filas, f)
		}
	}
	return t
}

func (t *tabla) columna(posicion int, nombres ...string) int {
	for _, n := range nombres {
		if i, ok := t.headers[strings.ToLower(n)]; ok {
			return i
		}
	}
	return posicion
}

func (t *tabla) celda(fila []interface{}, i int) string {
	if i < 0 || i >= len(fila) {
		return ""
	}
	return strings.TrimSpace(texto(fila[i]))
}

func filaVacia(f []interface{}) bool {
	for _, c := range f {
		if strings.TrimSpace(texto(c)) != "" {
			return false
		}
	}
	return true
}

func texto(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

package dto

import "github.com/shopspring/decimal"

// ─── Carrito ─────────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	Producto string `json:"producto" validate:"required"`
}

type ItemCarritoResponse struct {
	Producto    string          `json:"producto"`
	NombreCorto string          `json:"nombre_corto"`
	Cantidad    int             `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	Items  []ItemCarritoResponse `json:"items"`
	Total  decimal.Decimal       `json:"total"`
	Litros decimal.Decimal       `json:"litros"`
	// Resumen is the line that will be written to the ledger.
	Resumen string `json:"resumen"`
	// Mensaje is an advisory acknowledgment of the last action.
	Mensaje string `json:"mensaje,omitempty"`
}

// ─── Cobro ───────────────────────────────────────────────────────────────────

type PagoRequest struct {
	Metodo     string          `json:"metodo"     validate:"required"`
	Monto      decimal.Decimal `json:"monto"      validate:"min=0"`
	Referencia string          `json:"referencia" validate:"max=30"`
}

// CobrarRequest checks out the session's cart. Pago2 is required when Mixto.
type CobrarRequest struct {
	Mixto bool         `json:"mixto"`
	Pago  PagoRequest  `json:"pago"`
	Pago2 *PagoRequest `json:"pago2" validate:"required_if=Mixto true"`
}

type VentaRegistradaResponse struct {
	Fecha   string          `json:"fecha"`
	Hora    string          `json:"hora"`
	Resumen string          `json:"resumen"`
	Total   decimal.Decimal `json:"total"`
	Litros  decimal.Decimal `json:"litros"`
	Filas   int             `json:"filas"` // ledger rows appended
	Vuelto  decimal.Decimal `json:"vuelto"`
	Mensaje string          `json:"mensaje"`
}

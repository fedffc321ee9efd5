package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DetalleComplemento labels the second row of a mixed-payment sale.
const DetalleComplemento = "Pago Mixto (Complemento)"

// marcadoresAjuste flag summaries that are monetary adjustments, not product lines.
var marcadoresAjuste = []string{"Complemento", "ABONO", "SALDO"}

// Venta is one sale ledger row. Append-only: rows are never updated or deleted.
// A mixed payment produces two rows, the second one tagged DetalleComplemento
// with zero volume.
type Venta struct {
	ID             uint            `gorm:"primaryKey" json:"-"`
	Fecha          string          `gorm:"type:varchar(10);index;not null" json:"fecha"`
	Hora           string          `gorm:"type:varchar(8);not null" json:"hora"`
	DetallesCompra string          `gorm:"not null" json:"detalles_compra"` // "2x Botellón 20L, 1x ..."
	Monto          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Moneda         string          `gorm:"type:varchar(3);not null" json:"moneda"` // USD | VES
	MetodoPago     string          `gorm:"type:varchar(30);not null" json:"metodo_pago"`
	Referencia     string          `gorm:"type:varchar(30);not null" json:"referencia"`
	TotalLitros    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_litros"`
}

func (Venta) TableName() string { return "ventas" }

// EsComplemento reports whether the row is the complement leg of a mixed payment.
func (v Venta) EsComplemento() bool {
	return v.DetallesCompra == DetalleComplemento
}

// EsAjuste reports whether a summary carries a complement or adjustment marker.
func EsAjuste(detalle string) bool {
	for _, m := range marcadoresAjuste {
		if strings.Contains(detalle, m) {
			return true
		}
	}
	return false
}

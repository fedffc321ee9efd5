package service

import (
	"aguacontrol/internal/model"

	"github.com/shopspring/decimal"
)

// CalcularStock is tank inventory: liters delivered minus liters sold.
// Nothing stops it from going negative.
func CalcularStock(cargas []model.Carga, ventas []model.Venta) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cargas {
		total = total.Add(c.Litros)
	}
	for _, v := range ventas {
		total = total.Sub(v.TotalLitros)
	}
	return total
}

const (
	NivelNormal   = "normal"
	NivelBajo     = "bajo"
	NivelNegativo = "negativo"
)

// NivelStock classifies stock for the header warning. Display only.
func NivelStock(stock decimal.Decimal, umbralBajo int) string {
	switch {
	case stock.IsNegative():
		return NivelNegativo
	case stock.LessThan(decimal.NewFromInt(int64(umbralBajo))):
		return NivelBajo
	default:
		return NivelNormal
	}
}

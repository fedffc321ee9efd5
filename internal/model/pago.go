package model

import "regexp"

// MetodoPago is one of the fixed payment methods offered at checkout.
type MetodoPago string

const (
	MetodoPagoMovil    MetodoPago = "Pago Móvil"
	MetodoEfectivoBs   MetodoPago = "Efectivo Bs"
	MetodoDivisas      MetodoPago = "Divisas ($)"
	MetodoPuntoDeVenta MetodoPago = "Punto de Venta"
)

const (
	MonedaDolares   = "USD"
	MonedaBolivares = "VES"
	// ReferenciaVacia is recorded when no reference was typed.
	ReferenciaVacia = "N/A"
	// LongitudMinimaReferencia applies to methods that RequiereReferencia.
	LongitudMinimaReferencia = 4
)

// MetodosPago lists the methods in checkout order.
var MetodosPago = []MetodoPago{MetodoPagoMovil, MetodoEfectivoBs, MetodoDivisas, MetodoPuntoDeVenta}

// Valido reports whether m belongs to the enumerated set.
func (m MetodoPago) Valido() bool {
	_, ok := categoriaPorMetodo[m]
	return ok
}

// RequiereReferencia is true for the bank-backed methods.
func (m MetodoPago) RequiereReferencia() bool {
	return m == MetodoPagoMovil || m == MetodoPuntoDeVenta
}

// Moneda returns the currency tag recorded with the sale.
func (m MetodoPago) Moneda() string {
	if m == MetodoDivisas {
		return MonedaDolares
	}
	return MonedaBolivares
}

// CategoriaPago groups payment methods for reporting.
type CategoriaPago string

const (
	CategoriaPagoMovil    CategoriaPago = "pago_movil"
	CategoriaEfectivoBs   CategoriaPago = "efectivo_bs"
	CategoriaPuntoDeVenta CategoriaPago = "punto_de_venta"
	CategoriaDivisas      CategoriaPago = "divisas"
)

var categoriaPorMetodo = map[MetodoPago]CategoriaPago{
	MetodoPagoMovil:    CategoriaPagoMovil,
	MetodoEfectivoBs:   CategoriaEfectivoBs,
	MetodoDivisas:      CategoriaDivisas,
	MetodoPuntoDeVenta: CategoriaPuntoDeVenta,
}

// Legacy rows may carry free-form method text. The first matching pattern
// wins, so a method never lands in two categories.
var categoriaPorPatron = []struct {
	categoria CategoriaPago
	patron    *regexp.Regexp
}{
	{CategoriaPagoMovil, regexp.MustCompile(`(?i)móvil|movil`)},
	{CategoriaPuntoDeVenta, regexp.MustCompile(`(?i)punto`)},
	{CategoriaDivisas, regexp.MustCompile(`(?i)divisa|\$`)},
	{CategoriaEfectivoBs, regexp.MustCompile(`(?i)efectivo|bs`)},
}

// CategoriaDe classifies a recorded payment method. ok is false when the
// text matches no category; such rows are left out of per-category totals.
func CategoriaDe(metodo string) (cat CategoriaPago, ok bool) {
	if cat, ok = categoriaPorMetodo[MetodoPago(metodo)]; ok {
		return cat, true
	}
	for _, p := range categoriaPorPatron {
		if p.patron.MatchString(metodo) {
			return p.categoria, true
		}
	}
	return "", false
}

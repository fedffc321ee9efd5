package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"aguacontrol/internal/model"

	"github.com/shopspring/decimal"
)

// ── Carrito ───────────────────────────────────────────────────────────────────
// The pending order of one session. Quantities are always >= 1 and items keep
// the order in which they were first added so receipts are reproducible.
// Not safe for concurrent use; the owning Sesion serializes access.

type Carrito struct {
	orden    []string
	cantidad map[string]int
}

func NewCarrito() *Carrito {
	return &Carrito{cantidad: make(map[string]int)}
}

// Agregar adds one unit of nombre.
func (c *Carrito) Agregar(nombre string) {
	if _, ok := c.cantidad[nombre]; !ok {
		c.orden = append(c.orden, nombre)
	}
	c.cantidad[nombre]++
}

// Quitar drops nombre from the cart; no-op when absent.
func (c *Carrito) Quitar(nombre string) {
	if _, ok := c.cantidad[nombre]; !ok {
		return
	}
	delete(c.cantidad, nombre)
	for i, n := range c.orden {
		if n == nombre {
			c.orden = append(c.orden[:i], c.orden[i+1:]...)
			break
		}
	}
}

func (c *Carrito) Vaciar() {
	c.orden = nil
	c.cantidad = make(map[string]int)
}

func (c *Carrito) Cantidad(nombre string) int { return c.cantidad[nombre] }

func (c *Carrito) Vacio() bool { return len(c.orden) == 0 }

// LineaCarrito is one (product, qty) entry.
type LineaCarrito struct {
	Producto string
	Cantidad int
}

// Items returns the entries in insertion order.
func (c *Carrito) Items() []LineaCarrito {
	out := make([]LineaCarrito, 0, len(c.orden))
	for _, n := range c.orden {
		out = append(out, LineaCarrito{Producto: n, Cantidad: c.cantidad[n]})
	}
	return out
}

// ── Totales ───────────────────────────────────────────────────────────────────

type LineaTotal struct {
	Producto string
	Cantidad int
	Precio   decimal.Decimal
	Subtotal decimal.Decimal
	Litros   decimal.Decimal
}

type Totales struct {
	Monto  decimal.Decimal
	Litros decimal.Decimal
	Lineas []LineaTotal
	// Items holds "{qty}x {product}" in cart order.
	Items []string
}

// Resumen is the item summary written to the ledger.
func (t Totales) Resumen() string { return strings.Join(t.Items, ", ") }

// CalcularTotales prices the cart against the catalog. A product that left
// the catalog after being added prices at zero.
func CalcularTotales(c *Carrito, cat Catalogo) Totales {
	t := Totales{Monto: decimal.Zero, Litros: decimal.Zero}
	for _, l := range c.Items() {
		info, _ := cat.Get(l.Producto)
		qty := decimal.NewFromInt(int64(l.Cantidad))
		sub := info.Precio.Mul(qty)
		litros := info.Litros.Mul(qty)
		t.Monto = t.Monto.Add(sub)
		t.Litros = t.Litros.Add(litros)
		t.Lineas = append(t.Lineas, LineaTotal{
			Producto: l.Producto,
			Cantidad: l.Cantidad,
			Precio:   info.Precio,
			Subtotal: sub,
			Litros:   litros,
		})
		t.Items = append(t.Items, fmt.Sprintf("%dx %s", l.Cantidad, l.Producto))
	}
	return t
}

// ── Pago ──────────────────────────────────────────────────────────────────────

// ToleranciaMixto is the largest gap allowed between the two legs of a mixed
// payment and the order total.
var ToleranciaMixto = decimal.RequireFromString("0.5")

type PagoParcial struct {
	Metodo     model.MetodoPago
	Monto      decimal.Decimal
	Referencia string
}

func (p PagoParcial) referencia() string {
	if r := strings.TrimSpace(p.Referencia); r != "" {
		return r
	}
	return model.ReferenciaVacia
}

// Pago is the checkout input. Segundo is only read when Mixto is set.
type Pago struct {
	Mixto   bool
	Primero PagoParcial
	Segundo PagoParcial
}

// ValidarPago checks the payment against the order total. In single mode the
// received amount is informational and never compared with the total.
func ValidarPago(total decimal.Decimal, p Pago) error {
	if !p.Mixto {
		return validarParcial(p.Primero, 0)
	}
	suma := p.Primero.Monto.Add(p.Segundo.Monto)
	if suma.Sub(total).Abs().GreaterThan(ToleranciaMixto) {
		return &ErrValidacion{
			Campo:   "monto",
			Mensaje: fmt.Sprintf("%s %s (suman %s)", MsgMontosNoSuman, total.StringFixed(2), suma.StringFixed(2)),
		}
	}
	if err := validarParcial(p.Primero, 1); err != nil {
		return err
	}
	return validarParcial(p.Segundo, 2)
}

func validarParcial(p PagoParcial, leg int) error {
	if !p.Metodo.Valido() {
		return &ErrValidacion{Campo: "metodo", Pago: leg, Mensaje: MsgMetodoInvalido}
	}
	if p.Metodo.RequiereReferencia() && utf8.RuneCountInString(strings.TrimSpace(p.Referencia)) < model.LongitudMinimaReferencia {
		return &ErrValidacion{Campo: "referencia", Pago: leg, Mensaje: MsgFaltaReferencia}
	}
	return nil
}

// ConstruirVentas turns a validated payment into ledger rows. Single payment:
// one row. Mixed: the first leg carries the full summary and volume; the
// second leg becomes a zero-volume complement row only when it has an amount.
func ConstruirVentas(t Totales, p Pago, ahora time.Time) []model.Venta {
	fecha := ahora.Format(model.FormatoFecha)
	hora := ahora.Format(model.FormatoHora)

	fila := func(detalle string, pp PagoParcial, litros decimal.Decimal) model.Venta {
		return model.Venta{
			Fecha:          fecha,
			Hora:           hora,
			DetallesCompra: detalle,
			Monto:          pp.Monto,
			Moneda:         pp.Metodo.Moneda(),
			MetodoPago:     string(pp.Metodo),
			Referencia:     pp.referencia(),
			TotalLitros:    litros,
		}
	}

	ventas := []model.Venta{fila(t.Resumen(), p.Primero, t.Litros)}
	if p.Mixto && p.Segundo.Monto.GreaterThan(decimal.Zero) {
		ventas = append(ventas, fila(model.DetalleComplemento, p.Segundo, decimal.Zero))
	}
	return ventas
}

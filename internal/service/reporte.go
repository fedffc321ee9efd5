package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"aguacontrol/internal/model"

	"github.com/shopspring/decimal"
)

// Montos holds per-category payment totals.
type Montos map[model.CategoriaPago]decimal.Decimal

func (m Montos) De(c model.CategoriaPago) decimal.Decimal {
	if v, ok := m[c]; ok {
		return v
	}
	return decimal.Zero
}

// SumarPorCategoria totals amounts per payment category. Rows whose method
// matches no category are left out.
func SumarPorCategoria(ventas []model.Venta) Montos {
	out := Montos{}
	for _, v := range ventas {
		cat, ok := model.CategoriaDe(v.MetodoPago)
		if !ok {
			continue
		}
		out[cat] = out.De(cat).Add(v.Monto)
	}
	return out
}

// RangoSemana returns the Monday and Sunday of the week containing fecha.
func RangoSemana(fecha time.Time) (inicio, fin time.Time) {
	y, m, d := fecha.Date()
	dia := time.Date(y, m, d, 0, 0, 0, 0, fecha.Location())
	offset := (int(dia.Weekday()) + 6) % 7 // Monday = 0
	inicio = dia.AddDate(0, 0, -offset)
	return inicio, inicio.AddDate(0, 0, 6)
}

// EtiquetaSemana renders "dd/mm al dd/mm".
func EtiquetaSemana(inicio, fin time.Time) string {
	return inicio.Format("02/01") + " al " + fin.Format("02/01")
}

// Conteo is the number of units sold of one product.
type Conteo struct {
	Producto string
	Unidades int
}

var segmentoItem = regexp.MustCompile(`^(\d+)x (.+)$`)

// ContarProductos counts units per product from "{qty}x {name}, ..."
// summaries. A summary carrying a complement or adjustment marker is skipped
// whole; a segment that does not parse is skipped alone. Products keep the
// order in which they were first seen.
func ContarProductos(detalles []string) []Conteo {
	var orden []string
	unidades := map[string]int{}
	for _, d := range detalles {
		if model.EsAjuste(d) {
			continue
		}
		for _, seg := range strings.Split(d, ",") {
			m := segmentoItem.FindStringSubmatch(strings.TrimSpace(seg))
			if m == nil {
				continue
			}
			qty, err := strconv.Atoi(m[1])
			if err != nil || qty <= 0 {
				continue
			}
			nombre := strings.TrimSpace(m[2])
			if _, ok := unidades[nombre]; !ok {
				orden = append(orden, nombre)
			}
			unidades[nombre] += qty
		}
	}
	out := make([]Conteo, 0, len(orden))
	for _, n := range orden {
		out = append(out, Conteo{Producto: n, Unidades: unidades[n]})
	}
	return out
}

// enRango reports whether a ledger date falls in [desde, hasta]. Rows with
// an unreadable date never match.
func enRango(fecha string, desde, hasta time.Time, loc *time.Location) bool {
	f, ok := model.ParseFecha(fecha, loc)
	if !ok {
		return false
	}
	return !f.Before(desde) && !f.After(hasta)
}

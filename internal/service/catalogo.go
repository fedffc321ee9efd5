package service

import (
	"strings"

	"aguacontrol/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InfoProducto is what the register needs to price one unit.
type InfoProducto struct {
	Precio decimal.Decimal
	Litros decimal.Decimal
}

// Catalogo maps product name to price and volume, remembering the order in
// which the store listed the products.
type Catalogo struct {
	nombres []string
	info    map[string]InfoProducto
}

// ProcesarPrecios builds the catalog from raw configuration rows. Blank or
// unparsable numbers become zero so one bad cell never takes the register
// down. A repeated name keeps its first position and its last values.
func ProcesarPrecios(filas []model.FilaCatalogo) Catalogo {
	c := Catalogo{info: make(map[string]InfoProducto, len(filas))}
	for _, f := range filas {
		precio, ok := model.ParseDecimal(f.PrecioActual)
		if !ok && f.PrecioActual != "" {
			log.Warn().Str("producto", f.Producto).Str("precio", f.PrecioActual).Msg("catalogo: precio ilegible, usando 0")
		}
		litros, ok := model.ParseDecimal(f.Litros)
		if !ok && f.Litros != "" {
			log.Warn().Str("producto", f.Producto).Str("litros", f.Litros).Msg("catalogo: litros ilegibles, usando 0")
		}
		if _, existe := c.info[f.Producto]; !existe {
			c.nombres = append(c.nombres, f.Producto)
		}
		c.info[f.Producto] = InfoProducto{Precio: precio, Litros: litros}
	}
	return c
}

// Get returns the product's info; ok is false for unknown names.
func (c Catalogo) Get(nombre string) (InfoProducto, bool) {
	p, ok := c.info[nombre]
	return p, ok
}

// Nombres lists products in catalog order.
func (c Catalogo) Nombres() []string {
	return append([]string(nil), c.nombres...)
}

func (c Catalogo) Len() int { return len(c.nombres) }

// NombreCorto is the tile label: "Botellón 20L Recarga" → "Bot. 20L".
func NombreCorto(nombre string) string {
	s := strings.ReplaceAll(nombre, "Recarga", "")
	s = strings.ReplaceAll(s, "Botellón", "Bot.")
	return strings.Join(strings.Fields(s), " ")
}

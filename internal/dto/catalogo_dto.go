package dto

import "github.com/shopspring/decimal"

// ProductoResponse is one catalog tile.
type ProductoResponse struct {
	Nombre      string          `json:"nombre"`
	NombreCorto string          `json:"nombre_corto"`
	Precio      decimal.Decimal `json:"precio"`
	Litros      decimal.Decimal `json:"litros"`
}

type CatalogoResponse struct {
	Productos []ProductoResponse `json:"productos"`
}

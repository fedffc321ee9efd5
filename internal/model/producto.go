package model

import "github.com/shopspring/decimal"

// Producto is a catalog row as stored by the postgres backend.
// The spreadsheet backend keeps the same three columns in the
// "Configuracion" worksheet (Producto, Precio_Actual, Litros).
type Producto struct {
	ID           uint            `gorm:"primaryKey"`
	Nombre       string          `gorm:"uniqueIndex;not null"`
	PrecioActual decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Litros       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (Producto) TableName() string { return "productos" }

// FilaCatalogo is a raw catalog record exactly as read from the store.
// Prices and volumes stay as text until the catalog loader coerces them.
type FilaCatalogo struct {
	Producto     string `json:"producto"      yaml:"producto"`
	PrecioActual string `json:"precio_actual" yaml:"precio_actual"`
	Litros       string `json:"litros"        yaml:"litros"`
}

package model

import "github.com/shopspring/decimal"

// Carga is a tank delivery (water received). Append-only.
type Carga struct {
	ID     uint            `gorm:"primaryKey" json:"-"`
	Fecha  string          `gorm:"type:varchar(10);index;not null" json:"fecha"` // YYYY-MM-DD
	Hora   string          `gorm:"type:varchar(8);not null" json:"hora"`        // HH:MM:SS
	Litros decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"litros"`
	// Costo is a fixed zero placeholder kept for column compatibility with the worksheet.
	Costo decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"costo"`
	Notas string          `json:"notas"` // driver name
}

func (Carga) TableName() string { return "cargas" }

package dto

import "github.com/shopspring/decimal"

type StockResponse struct {
	Litros decimal.Decimal `json:"litros"`
	Nivel  string          `json:"nivel"` // normal | bajo | negativo
}

// RegistrarCargaRequest records a tank delivery. Empty fecha/hora mean now.
type RegistrarCargaRequest struct {
	Fecha  string          `json:"fecha"  validate:"omitempty,datetime=2006-01-02"`
	Hora   string          `json:"hora"`
	Litros decimal.Decimal `json:"litros" validate:"required,gt=0"`
	Notas  string          `json:"notas"  validate:"max=100"`
}

type CargaResponse struct {
	Fecha  string          `json:"fecha"`
	Hora   string          `json:"hora"`
	Litros decimal.Decimal `json:"litros"`
	Notas  string          `json:"notas"`
}

type CargasListResponse struct {
	Data  []CargaResponse `json:"data"`
	Total int             `json:"total"`
}

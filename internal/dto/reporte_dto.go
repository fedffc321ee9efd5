package dto

import "github.com/shopspring/decimal"

// ReporteFilter is bound from the query string. Empty fecha = today.
type ReporteFilter struct {
	Fecha string `form:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

type MontosPorCategoria struct {
	PagoMovil    decimal.Decimal `json:"pago_movil"`
	EfectivoBs   decimal.Decimal `json:"efectivo_bs"`
	PuntoDeVenta decimal.Decimal `json:"punto_de_venta"`
	Divisas      decimal.Decimal `json:"divisas"` // USD
}

type FilaVentaResponse struct {
	Hora           string          `json:"hora"`
	DetallesCompra string          `json:"detalles_compra"`
	Monto          decimal.Decimal `json:"monto"`
	MetodoPago     string          `json:"metodo_pago"`
}

type ReporteDiarioResponse struct {
	Fecha  string              `json:"fecha"`
	Montos MontosPorCategoria  `json:"montos"`
	Ventas []FilaVentaResponse `json:"ventas"`
}

type ConteoProducto struct {
	Producto string `json:"producto"`
	Unidades int    `json:"unidades"`
}

type ReporteSemanalResponse struct {
	Inicio         string             `json:"inicio"`
	Fin            string             `json:"fin"`
	Etiqueta       string             `json:"etiqueta"` // "12/10 al 18/10"
	Montos         MontosPorCategoria `json:"montos"`
	Productos      []ConteoProducto   `json:"productos"`
	LitrosVendidos decimal.Decimal    `json:"litros_vendidos"`
	Cargas         int                `json:"cargas"`
	LitrosCargados decimal.Decimal    `json:"litros_cargados"`
	Ventas         int                `json:"ventas"`
}

type EnviarReporteRequest struct {
	Fecha string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Email string `json:"email" validate:"omitempty,email"`
}

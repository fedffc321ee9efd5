package service

import (
	"errors"
	"fmt"
)

var (
	ErrProductoNoEncontrado  = errors.New("producto no encontrado en el catálogo")
	ErrCarritoVacio          = errors.New("el pedido está vacío")
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrSesionInvalida        = errors.New("sesión inválida o expirada")
)

// ErrValidacion is operator input that cannot be accepted. Nothing has been
// written and no state has changed when it is returned.
type ErrValidacion struct {
	Campo   string // request field at fault
	Pago    int    // 1 or 2 for the failing payment leg, 0 when not leg-specific
	Mensaje string
}

func (e *ErrValidacion) Error() string {
	if e.Pago > 0 {
		return fmt.Sprintf("%s en Pago %d", e.Mensaje, e.Pago)
	}
	return e.Mensaje
}

const (
	MsgFaltaReferencia = "Falta Referencia"
	MsgMontosNoSuman   = "Los montos no suman el total"
	MsgMetodoInvalido  = "Método de pago inválido"
)

// Package apierror provides the error envelopes returned to the UI shell.
// Messages are short and meant for the operator; internal detail (store
// errors, stack traces) is logged, never sent.
package apierror

// Codes let the shell pick an icon or a retry button without parsing text.
const (
	CodigoValidacion   = "validacion"
	CodigoConexion     = "conexion"
	CodigoNoEncontrado = "no_encontrado"
	CodigoAcceso       = "acceso"
	CodigoInterno      = "interno"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Codigo string `json:"codigo,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// WithCode builds an envelope carrying one of the Codigo* constants.
func WithCode(codigo, msg string) *APIError {
	return &APIError{Detail: msg, Codigo: codigo}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Codigo string            `json:"codigo"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Codigo: CodigoValidacion, Fields: fields}
}

package handler

import (
	"errors"
	"net/http"
	"reflect"

	"aguacontrol/internal/apierror"
	"aguacontrol/internal/middleware"
	"aguacontrol/internal/repository"
	"aguacontrol/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails, in which case
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode(apierror.CodigoValidacion, "JSON invalido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode(apierror.CodigoValidacion, "Parametros invalidos"))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// MensajeSinConexion is shown whenever the ledger store cannot be reached.
const MensajeSinConexion = "Sin conexión con la planilla. Intente de nuevo."

// responderError maps service and repository errors to HTTP responses.
// Anything unrecognized is attached to the context for ErrorHandler.
func responderError(c *gin.Context, err error) {
	var ve *service.ErrValidacion
	switch {
	case errors.As(err, &ve):
		resp := apierror.NewValidation(map[string]string{ve.Campo: ve.Mensaje})
		resp.Detail = ve.Error()
		c.JSON(http.StatusUnprocessableEntity, resp)
	case errors.Is(err, repository.ErrSinConexion):
		c.JSON(http.StatusServiceUnavailable, apierror.WithCode(apierror.CodigoConexion, MensajeSinConexion))
	case errors.Is(err, service.ErrProductoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.WithCode(apierror.CodigoNoEncontrado, err.Error()))
	case errors.Is(err, service.ErrCarritoVacio):
		c.JSON(http.StatusBadRequest, apierror.WithCode(apierror.CodigoValidacion, err.Error()))
	case errors.Is(err, service.ErrCredencialesInvalidas), errors.Is(err, service.ErrSesionInvalida):
		c.JSON(http.StatusUnauthorized, apierror.WithCode(apierror.CodigoAcceso, err.Error()))
	case errors.Is(err, service.ErrEnvioNoDisponible):
		c.JSON(http.StatusServiceUnavailable, apierror.WithCode(apierror.CodigoInterno, err.Error()))
	default:
		_ = c.Error(err)
	}
}

// sesionDe returns the caller's session, recreating an empty one when this
// process has not seen the token's session id yet.
func sesionDe(c *gin.Context, store service.SesionStore) *service.Sesion {
	claims := middleware.GetClaims(c)
	return store.Obtener(claims.SesionID, claims.ExpiresAt.Time)
}

package handler

import (
	"net/http"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

func (h *InventarioHandler) Stock(c *gin.Context) {
	resp, err := h.svc.Stock(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarCarga godoc
// @Summary      Registrar carga de agua
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarCargaRequest true "Carga"
// @Success      201  {object} dto.CargaResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/cargas [post]
func (h *InventarioHandler) RegistrarCarga(c *gin.Context) {
	var req dto.RegistrarCargaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCarga(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) ListarCargas(c *gin.Context) {
	resp, err := h.svc.ListarCargas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

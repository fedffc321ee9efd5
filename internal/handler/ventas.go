package handler

import (
	"net/http"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/service"

	"github.com/gin-gonic/gin"
)

// VentasHandler serves the catalog, the session cart and checkout.
type VentasHandler struct {
	svc      service.VentaService
	sesiones service.SesionStore
}

func NewVentasHandler(svc service.VentaService, sesiones service.SesionStore) *VentasHandler {
	return &VentasHandler{svc: svc, sesiones: sesiones}
}

func (h *VentasHandler) Catalogo(c *gin.Context) {
	resp, err := h.svc.Catalogo(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecargarCatalogo drops the cached snapshot and reads the store again.
func (h *VentasHandler) RecargarCatalogo(c *gin.Context) {
	resp, err := h.svc.RecargarCatalogo(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) VerCarrito(c *gin.Context) {
	resp, err := h.svc.VerCarrito(c.Request.Context(), sesionDe(c, h.sesiones))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarItem godoc
// @Summary      Agregar producto al pedido
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AgregarItemRequest true "Producto"
// @Success      200  {object} dto.CarritoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/carrito/items [post]
func (h *VentasHandler) AgregarItem(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), sesionDe(c, h.sesiones), req.Producto)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) QuitarItem(c *gin.Context) {
	resp, err := h.svc.QuitarItem(c.Request.Context(), sesionDe(c, h.sesiones), c.Param("producto"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) VaciarCarrito(c *gin.Context) {
	resp, err := h.svc.VaciarCarrito(c.Request.Context(), sesionDe(c, h.sesiones))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cobrar godoc
// @Summary      Registrar la venta del pedido actual
// @Description  Valida el pago y agrega las filas de la venta a la planilla. Con error de conexión el pedido se conserva.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CobrarRequest true "Pago"
// @Success      201  {object} dto.VentaRegistradaResponse
// @Failure      422  {object} apierror.ValidationError
// @Failure      503  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) Cobrar(c *gin.Context) {
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cobrar(c.Request.Context(), sesionDe(c, h.sesiones), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

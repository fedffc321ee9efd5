package handler

import (
	"net/http"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

func (h *ReportesHandler) Diario(c *gin.Context) {
	var f dto.ReporteFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.Diario(c.Request.Context(), f.Fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) Semanal(c *gin.Context) {
	var f dto.ReporteFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.Semanal(c.Request.Context(), f.Fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SemanalPDF godoc
// @Summary      Reporte semanal en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        fecha query string false "Cualquier día de la semana (YYYY-MM-DD)"
// @Success      200
// @Router       /v1/reportes/semanal/pdf [get]
func (h *ReportesHandler) SemanalPDF(c *gin.Context) {
	var f dto.ReporteFilter
	if !bindQuery(c, &f) {
		return
	}
	pdf, rep, err := h.svc.SemanalPDF(c.Request.Context(), f.Fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="reporte_semanal_`+rep.Inicio+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Enviar queues the weekly PDF for e-mail delivery.
func (h *ReportesHandler) Enviar(c *gin.Context) {
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarSemanal(c.Request.Context(), req); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"encolado": true})
}

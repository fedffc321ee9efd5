package handler

import (
	"net/http"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/middleware"
	"aguacontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc    service.AuthService
	secure bool // Secure flag on the session cookie
}

func NewAuthHandler(svc service.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, secure: secure}
}

// Token godoc
// @Summary Login con token de acceso
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TokenLoginRequest true "Token"
// @Success 200 {object} dto.SesionResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenLoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.LoginToken(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	h.setCookie(c, resp)
	c.JSON(http.StatusOK, resp)
}

// Enlace is the bookmarkable access link: /v1/auth/enlace?token=...
// A valid token sets the cookie and sends the browser to the register.
func (h *AuthHandler) Enlace(c *gin.Context) {
	resp, err := h.svc.LoginToken(c.Request.Context(), dto.TokenLoginRequest{Token: c.Query("token")})
	if err != nil {
		responderError(c, err)
		return
	}
	h.setCookie(c, resp)
	c.Redirect(http.StatusFound, "/")
}

// Login godoc
// @Summary Login con clave maestra
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Clave"
// @Success 200 {object} dto.SesionResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.LoginClave(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	h.setCookie(c, resp)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	h.svc.Logout(c.Request.Context(), claims.SesionID, claims.ExpiresAt.Time)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieSesion, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setCookie(c *gin.Context, resp *dto.SesionResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieSesion, resp.AccessToken, resp.ExpiresIn, "/", "", h.secure, true)
}

package middleware

import (
	"net/http"
	"strings"

	"aguacontrol/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
	// CookieSesion carries the session token for browser clients.
	CookieSesion = "agua_token_secure"
)

// SesionClaims are the claims embedded in every session token.
type SesionClaims struct {
	SesionID string `json:"sid"`
	Metodo   string `json:"metodo"` // token | clave
	jwt.RegisteredClaims
}

// RevocationChecker reports sessions closed by logout before expiry.
type RevocationChecker interface {
	Revocada(id string) bool
}

// SessionAuth accepts the session token from the cookie or a Bearer header.
func SessionAuth(secret string, revocadas RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenDe(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.WithCode(apierror.CodigoAcceso, "Autenticacion requerida"))
			return
		}

		claims := &SesionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.SesionID == "" || claims.ExpiresAt == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.WithCode(apierror.CodigoAcceso, "Sesion invalida o expirada"))
			return
		}
		if revocadas != nil && revocadas.Revocada(claims.SesionID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.WithCode(apierror.CodigoAcceso, "Sesion cerrada"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func tokenDe(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if v, err := c.Cookie(CookieSesion); err == nil {
		return v
	}
	return ""
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *SesionClaims {
	claims, _ := c.MustGet(ClaimsKey).(*SesionClaims)
	return claims
}

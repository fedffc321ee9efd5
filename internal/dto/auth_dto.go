package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type TokenLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SesionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	Metodo      string `json:"metodo"`     // token | clave
}

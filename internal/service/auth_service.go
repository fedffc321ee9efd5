package service

import (
	"context"
	"crypto/subtle"
	"time"

	"aguacontrol/internal/config"
	"aguacontrol/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	MetodoAccesoToken = "token"
	MetodoAccesoClave = "clave"
)

type AuthService interface {
	// LoginToken accepts one of the configured access-link tokens.
	LoginToken(ctx context.Context, req dto.TokenLoginRequest) (*dto.SesionResponse, error)
	// LoginClave accepts the master password.
	LoginClave(ctx context.Context, req dto.LoginRequest) (*dto.SesionResponse, error)
	// Logout revokes the session until it would have expired and drops its cart.
	Logout(ctx context.Context, sesionID string, expira time.Time)
}

type authService struct {
	cfg      *config.Config
	sesiones SesionStore
	now      func() time.Time
}

func NewAuthService(cfg *config.Config, sesiones SesionStore) AuthService {
	return &authService{cfg: cfg, sesiones: sesiones, now: time.Now}
}

func (s *authService) LoginToken(_ context.Context, req dto.TokenLoginRequest) (*dto.SesionResponse, error) {
	valido := false
	for _, t := range s.cfg.Tokens() {
		if subtle.ConstantTimeCompare([]byte(t), []byte(req.Token)) == 1 {
			valido = true
		}
	}
	if !valido {
		log.Warn().Msg("auth: token de acceso rechazado")
		return nil, ErrCredencialesInvalidas
	}
	return s.abrirSesion(MetodoAccesoToken, s.cfg.TokenSessionDays)
}

func (s *authService) LoginClave(_ context.Context, req dto.LoginRequest) (*dto.SesionResponse, error) {
	if s.cfg.MasterPasswordHash == "" {
		return nil, ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.MasterPasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Msg("auth: clave maestra rechazada")
		return nil, ErrCredencialesInvalidas
	}
	return s.abrirSesion(MetodoAccesoClave, s.cfg.PasswordSessionDays)
}

func (s *authService) Logout(_ context.Context, sesionID string, expira time.Time) {
	s.sesiones.Revocar(sesionID, expira)
	log.Info().Str("sesion", sesionID).Msg("auth: sesión cerrada")
}

func (s *authService) abrirSesion(metodo string, dias int) (*dto.SesionResponse, error) {
	if dias <= 0 {
		dias = 1
	}
	ahora := s.now()
	expira := ahora.Add(time.Duration(dias) * 24 * time.Hour)
	ses := s.sesiones.Crear(metodo, expira)

	token, err := s.generateToken(ses.ID, metodo, ahora, expira)
	if err != nil {
		return nil, err
	}
	log.Info().Str("sesion", ses.ID).Str("metodo", metodo).Msg("auth: sesión abierta")
	return &dto.SesionResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(expira.Sub(ahora).Seconds()),
		Metodo:      metodo,
	}, nil
}

func (s *authService) generateToken(sesionID, metodo string, emitido, expira time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":    sesionID,
		"metodo": metodo,
		"iat":    emitido.Unix(),
		"exp":    expira.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

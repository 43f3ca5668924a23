package services

import (
	"errors"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/security"
)

const adminTokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("admin login is not configured")
)

// AuthResult holds authentication result data
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService issues and checks admin tokens for the menu write API.
type AuthService struct {
	jwtSecret    string
	passwordHash string
	password     string
	logger       *logging.ChanneledLogger
}

func NewAuthService(jwtSecret, passwordHash, password string, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		jwtSecret:    jwtSecret,
		passwordHash: passwordHash,
		password:     password,
		logger:       logger,
	}
}

// AuthenticateAdmin checks password and returns a signed admin token.
func (a *AuthService) AuthenticateAdmin(password string) (*AuthResult, error) {
	if a.passwordHash == "" && a.password == "" {
		return nil, ErrAuthDisabled
	}
	if !security.CheckPassword(password, a.passwordHash, a.password) {
		a.logger.Auth().Warn("Admin login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := security.GenerateAdminToken("admin", a.jwtSecret, adminTokenTTL)
	if err != nil {
		return nil, err
	}

	a.logger.Auth().Info("Admin login succeeded")
	return &AuthResult{Token: token, ExpiresAt: time.Now().UTC().Add(adminTokenTTL)}, nil
}

// ValidateAdminToken reports whether token is a valid admin token.
func (a *AuthService) ValidateAdminToken(token string) bool {
	if token == "" {
		return false
	}
	claims, err := security.ValidateJWT(token, a.jwtSecret)
	if err != nil {
		a.logger.Auth().Debug("Token validation failed", "error", err)
		return false
	}
	return security.IsAdmin(claims)
}

package usecases

import (
	"context"

	"github.com/google/uuid"

	domainerrors "auto-diag.backend/internal/domain/errors"
	"auto-diag.backend/pkg/crypto"
	"auto-diag.backend/pkg/jwt"
)

// AdminRole is the role claim carried by admin tokens
const AdminRole = "admin"

// AuthUsecase authenticates the bootstrap admin against configured
// credentials. There is no admin table; the single operator account comes
// from the environment.
type AuthUsecase struct {
	adminID      uuid.UUID
	adminEmail   string
	passwordHash string
	jwtService   *jwt.JWTService
}

// NewAuthUsecase creates an auth usecase for the configured admin. The admin
// ID is derived from the email so it is stable across instances.
func NewAuthUsecase(adminEmail, passwordHash string, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		adminID:      uuid.NewSHA1(uuid.NameSpaceURL, []byte("admin:"+adminEmail)),
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		jwtService:   jwtService,
	}
}

// Login verifies the email and password and returns a token pair
func (u *AuthUsecase) Login(_ context.Context, email, password string) (*jwt.TokenPair, error) {
	if email != u.adminEmail || u.passwordHash == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !crypto.CheckPassword(password, u.passwordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	return u.jwtService.GenerateTokenPair(u.adminID, u.adminEmail, AdminRole)
}

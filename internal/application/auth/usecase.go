package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
	pkgjwt "github.com/Cambadios/ImprentaCamiri-sub000/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autentica usuarios y emite tokens JWT.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// LoginResult token emitido más datos básicos del usuario.
type LoginResult struct {
	Token string
	Name  string
	Role  string
}

// Login verifica credenciales (bcrypt) y devuelve un JWT con el rol.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Name: user.Name, Role: user.Role}, nil
}

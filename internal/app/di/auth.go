package di

import (
	"context"

	authentity "wastemap_backend/internal/feature/auth/domain/entity"
	authhandler "wastemap_backend/internal/feature/auth/transport/handler"
	authusecase "wastemap_backend/internal/feature/auth/usecase"
	"wastemap_backend/internal/platform/config"
	jwtmw "wastemap_backend/internal/platform/jwt"
	"wastemap_backend/internal/platform/password"
)

// Auth bundles everything built from the auth configuration.
type Auth struct {
	Handler       *authhandler.AuthHandler
	Authenticator *jwtmw.Authenticator
	Usecase       interface {
		authhandler.AuthUsecase
		jwtmw.UserLoader
		AdminBootstrapper
	}
}

// AdminBootstrapper creates the configured admin account on startup.
type AdminBootstrapper interface {
	BootstrapAdmin(ctx context.Context) (*authentity.User, error)
}

// NewAuth creates the token service, password hasher and auth usecase from cfg.
func NewAuth(cfg config.Config, users authusecase.UserRepository) Auth {
	tokens := jwtmw.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	uc := authusecase.NewAuthUsecase(users, password.NewHasher(cfg.BcryptCost), tokens, authusecase.AdminConfig{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	return Auth{
		Handler:       authhandler.NewAuthHandler(uc),
		Authenticator: jwtmw.NewAuthenticator(tokens, uc),
		Usecase:       uc,
	}
}

package auth

import (
	"errors"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rabbits_den/internal/config"
	"rabbits_den/internal/repository"
)

var (
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidInput        = errors.New("login and password are required")
	ErrLoginTaken          = errors.New("login already taken")
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
	log       *zap.Logger
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
	log *zap.Logger,
) *serv {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
		log:       log,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"rabbits_den/internal/model"
	"rabbits_den/internal/repository"
	"rabbits_den/pkg/token"
)

// Refresh выдает новый access токен для живой сессии
func (s *serv) Refresh(ctx context.Context, data *model.AuthData) (string, error) {
	if err := s.checkRefreshToken(ctx, data); err != nil {
		return "", err
	}

	user, err := s.authRepo.GetUserBySessionID(ctx, data.SessionID)
	if err != nil {
		return "", fmt.Errorf("get session user: %w", err)
	}

	return s.accessToken(user.ID, data.SessionID)
}

// checkRefreshToken сверяет refresh токен с хэшем сессии.
// Просроченные сессии репозиторий не возвращает
func (s *serv) checkRefreshToken(ctx context.Context, data *model.AuthData) error {
	if data.SessionID == "" || data.RefreshToken == "" {
		return ErrInvalidRefreshToken
	}

	hash, err := s.authRepo.GetRefreshTokenBySessionID(ctx, data.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidRefreshToken
	}
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if !token.VerifyRefreshToken(data.SessionID, data.RefreshToken, hash) {
		return ErrInvalidRefreshToken
	}
	return nil
}

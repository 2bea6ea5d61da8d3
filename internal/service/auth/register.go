package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"rabbits_den/internal/model"
	"rabbits_den/internal/repository"
	"rabbits_den/pkg/pass"
	"rabbits_den/pkg/token"
)

func (s *serv) Register(ctx context.Context, user *model.User) (*model.AuthData, error) {
	if user.Login == "" || user.Password == "" {
		return nil, ErrInvalidInput
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	var data model.AuthData

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Создать пользователя в бд
		user.ID, err = s.userRepo.CreateUser(ctx, user)
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return ErrLoginTaken
			}
			return err
		}

		// 2. Сессия и токены
		auth, err := s.newSession(ctx, user)
		if err != nil {
			return err
		}
		data = *auth
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Int("user_id", user.ID))
	return &data, nil
}

// newSession создает сессию с refresh токеном и выдает access токен
func (s *serv) newSession(ctx context.Context, user *model.User) (*model.AuthData, error) {
	sessionID := generateSessionID()

	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:           sessionID,
			UserID:       user.ID,
			RefreshToken: token.HashRefreshToken(sessionID, refreshToken),
			ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
		})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.accessToken(user.ID, sessionID)
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}

func (s *serv) accessToken(userID int, sessionID string) (string, error) {
	return token.GenerateAccessToken(userID, sessionID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
}

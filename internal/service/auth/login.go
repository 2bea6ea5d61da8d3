package auth

import (
	"context"
	"errors"

	"rabbits_den/internal/model"
	"rabbits_den/internal/repository"
	"rabbits_den/pkg/pass"
)

func (s *serv) Login(ctx context.Context, user *model.User) (*model.AuthData, error) {
	// Получение пользователя из бд по логину
	stored, err := s.userRepo.GetUserByLogin(ctx, user.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(stored.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(ctx, stored)
}

// Logout закрывает сессию только по ее refresh токену
func (s *serv) Logout(ctx context.Context, data *model.AuthData) error {
	if err := s.checkRefreshToken(ctx, data); err != nil {
		return err
	}
	return s.authRepo.DeleteSession(ctx, data.SessionID)
}

package repository

import (
	"context"
	"errors"

	"rabbits_den/internal/model"
)

type CascadeRepository interface {
	GetState(ctx context.Context, userID int) (model.CascadeState, error)
	UpdateState(ctx context.Context, userID int, state model.CascadeState) error
}

type CascadeStatsRepository interface {
	Record(bet, payout int64, cascades int, free, bonus bool)
	Stats() model.CascadeStats
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int64, error)
	UpdateBalance(ctx context.Context, id int, amount int64) error
}

var (
	// ErrNotFound запись отсутствует
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists нарушение уникальности
	ErrAlreadyExists = errors.New("already exists")
)

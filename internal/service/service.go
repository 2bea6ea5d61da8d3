package service

import (
	"context"

	"rabbits_den/internal/model"
)

type CascadeService interface {
	Spin(ctx context.Context, req model.CascadeSpin) (*model.CascadeSpinResult, error)
	BuyBonus(ctx context.Context, req model.BonusBuy) (*model.BonusBuyResult, error)
	Deposit(ctx context.Context, amount int64) (int64, error)
	CheckData(ctx context.Context) (*model.CascadeData, error)
	Replay(ctx context.Context, req model.ReplayRequest) (*model.CascadeSpinResult, error)
	Stats(ctx context.Context) model.CascadeStats
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, data *model.AuthData) error
}

package cascade

import (
	"context"
	"fmt"
	"math"

	"rabbits_den/internal/middleware"
	"rabbits_den/internal/model"
)

// Deposit пополнение баланса, возвращает новый баланс
func (s *serv) Deposit(ctx context.Context, amount int64) (int64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, ErrUnauthorized
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.userRepo.GetBalance(ctx, userID)
		if err != nil {
			return err
		}
		if amount > math.MaxInt64-current {
			return fmt.Errorf("%w: balance %d, deposit %d", ErrInvalidAmount, current, amount)
		}
		balance = current + amount
		return s.userRepo.UpdateBalance(ctx, userID, balance)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// CheckData баланс и состояние бонуса игрока
func (s *serv) CheckData(ctx context.Context) (*model.CascadeData, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	var data model.CascadeData
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		balance, err := s.userRepo.GetBalance(ctx, userID)
		if err != nil {
			return err
		}
		state, err := s.cascadeRepo.GetState(ctx, userID)
		if err != nil {
			return err
		}
		data = model.CascadeData{
			Balance:    balance,
			FreeSpins:  state.FreeSpins,
			Multiplier: state.Multiplier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *serv) Stats(_ context.Context) model.CascadeStats {
	return s.statsRepo.Stats()
}

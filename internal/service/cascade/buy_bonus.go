package cascade

import (
	"context"

	"go.uber.org/zap"

	"rabbits_den/internal/middleware"
	"rabbits_den/internal/model"
)

// BuyBonus покупка бонуса: фриспины и множитель как после выпадения скаттеров на платном спине
func (s *serv) BuyBonus(ctx context.Context, req model.BonusBuy) (*model.BonusBuyResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if err := s.validateBet(req.Bet); err != nil {
		return nil, err
	}

	cost := req.Bet * s.cascadeConfig.BonusBuyCostXBet()
	cfg := s.engine.Config()
	res := &model.BonusBuyResult{
		Cost:       cost,
		FreeSpins:  cfg.BonusSpins,
		Multiplier: 1 + cfg.MultiplierStep,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		balance, err := s.userRepo.GetBalance(ctx, userID)
		if err != nil {
			return err
		}
		state, err := s.cascadeRepo.GetState(ctx, userID)
		if err != nil {
			return err
		}
		if state.FreeSpins > 0 {
			return ErrFreeSpinsActive
		}

		if balance < cost {
			return ErrNotEnoughBalance
		}
		res.Balance = balance - cost
		if err := s.userRepo.UpdateBalance(ctx, userID, res.Balance); err != nil {
			return err
		}

		return s.cascadeRepo.UpdateState(ctx, userID, model.CascadeState{
			FreeSpins:  res.FreeSpins,
			Multiplier: res.Multiplier,
			Bet:        req.Bet,
		})
	})
	if err != nil {
		return nil, err
	}

	s.statsRepo.Record(cost, 0, 0, false, false)
	s.metrics.ObserveBonusPurchase()
	s.log.Info("bonus bought", zap.Int("user_id", userID), zap.Int64("cost", cost))
	return res, nil
}

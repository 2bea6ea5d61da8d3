package cascade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rabbits_den/internal/engine"
	"rabbits_den/internal/middleware"
	"rabbits_den/internal/model"
)

// Spin платный спин или фриспин, если у игрока остались бесплатные игры.
// Списание ставки, игра, начисление выигрыша и сохранение состояния идут в одной транзакции
func (s *serv) Spin(ctx context.Context, req model.CascadeSpin) (*model.CascadeSpinResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if err := s.validateBet(req.Bet); err != nil {
		return nil, err
	}

	src, err := s.newSource()
	if err != nil {
		return nil, err
	}

	var (
		res       *model.CascadeSpinResult
		bet, paid int64
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// Баланс первым: строка users блокирует игрока, даже если строки состояния еще нет
		balance, err := s.userRepo.GetBalance(ctx, userID)
		if err != nil {
			return err
		}
		state, err := s.cascadeRepo.GetState(ctx, userID)
		if err != nil {
			return err
		}

		isFreeSpin := state.FreeSpins > 0
		bet = req.Bet
		if isFreeSpin {
			// Фриспин играется на ставке, с которой получен бонус
			bet = state.Bet
			if bet <= 0 {
				bet = s.cascadeConfig.MinBet()
			}
		} else {
			if balance < bet {
				return ErrNotEnoughBalance
			}
			balance -= bet
			paid = bet
			// Платный спин начинается без бонусного множителя
			state.Multiplier = 1
		}

		out, err := s.engine.Play(engine.Request{
			Bet:                bet,
			FreeGamesRemaining: state.FreeSpins,
			CurrentMultiplier:  state.Multiplier,
		}, src)
		if err != nil {
			return err
		}

		// Начисление выигрыша
		balance += out.TotalWin
		if err := s.userRepo.UpdateBalance(ctx, userID, balance); err != nil {
			return err
		}
		if err := s.cascadeRepo.UpdateState(ctx, userID, nextState(out, bet)); err != nil {
			return err
		}

		res = resultFromEngine(out)
		res.RoundID = uuid.NewString()
		res.Balance = balance
		res.InFreeSpin = isFreeSpin
		res.Bet = bet
		return nil
	})
	if err != nil {
		if errors.Is(err, engine.ErrCascadeLimit) {
			s.metrics.ObserveCascadeLimit()
		}
		if !errors.Is(err, ErrNotEnoughBalance) {
			s.log.Error("spin failed", zap.Int("user_id", userID), zap.Int64("bet", req.Bet), zap.Error(err))
		}
		return nil, err
	}

	s.statsRepo.Record(paid, res.TotalWin, len(res.Cascades), res.InFreeSpin, res.BonusTriggered)
	s.metrics.ObserveSpin(res.InFreeSpin, paid, res.TotalWin, len(res.Cascades), res.BonusTriggered)
	s.log.Debug("spin",
		zap.String("round_id", res.RoundID),
		zap.Int("user_id", userID),
		zap.Int64("bet", bet),
		zap.Int64("win", res.TotalWin),
		zap.Int("cascades", len(res.Cascades)),
		zap.Bool("free", res.InFreeSpin))

	return res, nil
}

// nextState состояние после спина; без оставшихся фриспинов множитель и ставка сбрасываются
func nextState(out *engine.Result, bet int64) model.CascadeState {
	if out.FreeGamesRemaining == 0 {
		return model.DefaultCascadeState()
	}
	return model.CascadeState{
		FreeSpins:  out.FreeGamesRemaining,
		Multiplier: out.CurrentMultiplier,
		Bet:        bet,
	}
}

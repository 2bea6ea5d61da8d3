package cascade

import (
	"context"
	"fmt"

	"rabbits_den/internal/engine"
	"rabbits_den/internal/model"
)

// Replay воспроизводит спин по сидам без обращения к кошельку и состоянию игрока
func (s *serv) Replay(ctx context.Context, req model.ReplayRequest) (*model.CascadeSpinResult, error) {
	if req.ServerSeed == "" || req.ClientSeed == "" {
		return nil, ErrInvalidReplaySeed
	}
	if err := s.validateBet(req.Bet); err != nil {
		return nil, err
	}
	if req.FreeGamesRemaining < 0 || req.FreeGamesRemaining > engine.MaxFreeGames ||
		req.CurrentMultiplier < 0 || req.CurrentMultiplier > engine.MaxMultiplier {
		return nil, fmt.Errorf("%w: free games %d, multiplier %d",
			ErrInvalidReplayState, req.FreeGamesRemaining, req.CurrentMultiplier)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := s.engine.Play(engine.Request{
		Bet:                req.Bet,
		FreeGamesRemaining: req.FreeGamesRemaining,
		CurrentMultiplier:  req.CurrentMultiplier,
	}, engine.NewFairSource(req.ServerSeed, req.ClientSeed, req.Nonce))
	if err != nil {
		return nil, err
	}
	return resultFromEngine(out), nil
}

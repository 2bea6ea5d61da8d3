package converter

import (
	"rabbits_den/internal/api/dto/cascade"
	"rabbits_den/internal/model"
)

func ToCascadeSpin(req cascade.SpinRequest) model.CascadeSpin {
	return model.CascadeSpin{
		Bet: req.Bet,
	}
}

// ToSpinResponse withBalance false для воспроизведения, где кошелек не участвует
func ToSpinResponse(res model.CascadeSpinResult, withBalance bool) cascade.SpinResponse {
	out := cascade.SpinResponse{
		RoundID:            res.RoundID,
		InitialGrid:        res.InitialGrid,
		FinalGrid:          res.FinalGrid,
		TotalWinAmount:     res.TotalWin,
		Message:            res.Message,
		CascadeResults:     make([]cascade.CascadeResult, 0, len(res.Cascades)),
		ScattersFound:      res.ScattersFound,
		BonusTriggered:     res.BonusTriggered,
		FreeGamesRemaining: res.FreeGamesRemaining,
		CurrentMultiplier:  res.CurrentMultiplier,
		Bet:                res.Bet,
		InFreeSpin:         res.InFreeSpin,
	}
	if withBalance {
		balance := res.Balance
		out.Balance = &balance
	}
	for _, step := range res.Cascades {
		out.CascadeResults = append(out.CascadeResults, cascade.CascadeResult{
			Grid:         step.Grid,
			WinningCells: step.WinningCells,
			WinAmount:    step.Win,
			Clusters:     step.Clusters,
		})
	}
	return out
}

func ToBonusBuy(req cascade.BonusBuyRequest) model.BonusBuy {
	return model.BonusBuy{
		Bet: req.Bet,
	}
}

func ToBonusBuyResponse(res model.BonusBuyResult) cascade.BonusBuyResponse {
	return cascade.BonusBuyResponse{
		Cost:              res.Cost,
		Balance:           res.Balance,
		FreeSpins:         res.FreeSpins,
		CurrentMultiplier: res.Multiplier,
	}
}

func ToDataResponse(data model.CascadeData) cascade.DataResponse {
	return cascade.DataResponse{
		Balance:           data.Balance,
		FreeSpins:         data.FreeSpins,
		CurrentMultiplier: data.Multiplier,
	}
}

func ToReplayRequest(req cascade.ReplayRequest) model.ReplayRequest {
	return model.ReplayRequest{
		ServerSeed:         req.ServerSeed,
		ClientSeed:         req.ClientSeed,
		Nonce:              req.Nonce,
		Bet:                req.Bet,
		FreeGamesRemaining: req.FreeGamesRemaining,
		CurrentMultiplier:  req.CurrentMultiplier,
	}
}

func ToStatsResponse(s model.CascadeStats) cascade.StatsResponse {
	return cascade.StatsResponse{
		TotalSpins:    s.TotalSpins,
		FreeSpins:     s.FreeSpins,
		TotalBet:      s.TotalBet,
		TotalPayout:   s.TotalPayout,
		RTP:           s.RTP,
		WindowRTP:     s.WindowRTP,
		HitRate:       s.HitRate,
		BonusTriggers: s.BonusTriggers,
		MaxWin:        s.MaxWin,
		MaxCascades:   s.MaxCascades,
		CascadeCounts: s.CascadeCounts,
	}
}

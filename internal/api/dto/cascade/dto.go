package cascade

import (
	"rabbits_den/internal/engine"
)

type SpinRequest struct {
	Bet int64 `json:"bet"` // Ставка в минимальных единицах валюты
}

type CascadeResult struct {
	Grid         *engine.Grid        `json:"grid"`          // Поле после сдвига и дозаполнения
	WinningCells []engine.Position   `json:"winning_cells"` // Ячейки, убранные на этом шаге
	WinAmount    int64               `json:"win_amount"`
	Clusters     []engine.ClusterWin `json:"clusters"`
}

type SpinResponse struct {
	RoundID            string          `json:"round_id,omitempty"`
	InitialGrid        *engine.Grid    `json:"initial_grid"`
	FinalGrid          *engine.Grid    `json:"final_grid"`
	TotalWinAmount     int64           `json:"total_win_amount"`
	Message            string          `json:"message"`
	CascadeResults     []CascadeResult `json:"cascade_results"`
	ScattersFound      int             `json:"scatters_found"`
	BonusTriggered     bool            `json:"bonus_triggered"`
	FreeGamesRemaining int             `json:"free_games_remaining"`
	CurrentMultiplier  int             `json:"current_multiplier"`
	Bet                int64           `json:"bet,omitempty"` // Фактическая ставка; у фриспина ставка бонуса
	Balance            *int64          `json:"balance,omitempty"`
	InFreeSpin         bool            `json:"in_free_spin"`
}

type BonusBuyRequest struct {
	Bet int64 `json:"bet"` // Ставка, от которой считается цена бонуса
}

type BonusBuyResponse struct {
	Cost              int64 `json:"cost"`
	Balance           int64 `json:"balance"`
	FreeSpins         int   `json:"free_games_remaining"`
	CurrentMultiplier int   `json:"current_multiplier"`
}

type DepositRequest struct {
	Amount int64 `json:"amount"`
}

type DepositResponse struct {
	Balance int64 `json:"balance"`
}

type DataResponse struct {
	Balance           int64 `json:"balance"`
	FreeSpins         int   `json:"free_games_remaining"`
	CurrentMultiplier int   `json:"current_multiplier"`
}

type ReplayRequest struct {
	ServerSeed         string `json:"server_seed"`
	ClientSeed         string `json:"client_seed"`
	Nonce              uint64 `json:"nonce"`
	Bet                int64  `json:"bet"`
	FreeGamesRemaining int    `json:"free_games_remaining"`
	CurrentMultiplier  int    `json:"current_multiplier"`
}

type StatsResponse struct {
	TotalSpins    int64         `json:"total_spins"`
	FreeSpins     int64         `json:"free_spins"`
	TotalBet      int64         `json:"total_bet"`
	TotalPayout   int64         `json:"total_payout"`
	RTP           float64       `json:"rtp"`
	WindowRTP     float64       `json:"window_rtp"`
	HitRate       float64       `json:"hit_rate"`
	BonusTriggers int64         `json:"bonus_triggers"`
	MaxWin        int64         `json:"max_win"`
	MaxCascades   int           `json:"max_cascades"`
	CascadeCounts map[int]int64 `json:"cascade_counts"`
}

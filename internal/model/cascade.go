package model

import (
	"rabbits_den/internal/engine"
)

type CascadeSpin struct {
	Bet int64
}

// CascadeState сохраняемое между спинами состояние игрока.
// Bet ставка, на которой выигран или куплен бонус; по ней играются фриспины
type CascadeState struct {
	FreeSpins  int
	Multiplier int
	Bet        int64
}

// DefaultCascadeState состояние игрока без записи в базе
func DefaultCascadeState() CascadeState {
	return CascadeState{FreeSpins: 0, Multiplier: 1}
}

type CascadeSpinResult struct {
	RoundID            string
	InitialGrid        *engine.Grid
	FinalGrid          *engine.Grid
	Cascades           []engine.CascadeStep
	TotalWin           int64
	Message            string
	ScattersFound      int
	BonusTriggered     bool
	FreeGamesRemaining int
	CurrentMultiplier  int
	Bet                int64
	Balance            int64
	InFreeSpin         bool
}

type BonusBuy struct {
	Bet int64
}

type BonusBuyResult struct {
	Cost       int64
	Balance    int64
	FreeSpins  int
	Multiplier int
}

type CascadeData struct {
	Balance    int64
	FreeSpins  int
	Multiplier int
}

// ReplayRequest параметры воспроизведения спина по сидам
type ReplayRequest struct {
	ServerSeed         string
	ClientSeed         string
	Nonce              uint64
	Bet                int64
	FreeGamesRemaining int
	CurrentMultiplier  int
}

// CascadeStats агрегированная статистика игры
type CascadeStats struct {
	TotalSpins    int64
	FreeSpins     int64
	TotalBet      int64
	TotalPayout   int64
	RTP           float64
	WindowRTP     float64
	HitRate       float64
	BonusTriggers int64
	MaxWin        int64
	MaxCascades   int
	// CascadeCounts число спинов по количеству каскадов
	CascadeCounts map[int]int64
}

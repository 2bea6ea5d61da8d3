package cascade_stats_repo

import (
	"sync"

	"rabbits_den/internal/model"
)

// defaultWindowSize размер окна последних спинов для RTP окна
const defaultWindowSize = 500

type spinResult struct {
	bet    int64
	payout int64
}

// StatsRepo статистика игры в памяти процесса
type StatsRepo struct {
	mtx sync.RWMutex

	totalSpins    int64
	freeSpins     int64
	winningSpins  int64
	totalBet      int64
	totalPayout   int64
	bonusTriggers int64
	maxWin        int64
	maxCascades   int
	cascadeCounts map[int]int64

	window     []spinResult
	windowSize int
	windowBet  int64
	windowPay  int64
}

// NewCascadeStatsRepository windowSize <= 0 означает размер по умолчанию
func NewCascadeStatsRepository(windowSize int) *StatsRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &StatsRepo{
		cascadeCounts: make(map[int]int64),
		window:        make([]spinResult, 0, windowSize),
		windowSize:    windowSize,
	}
}

// Record учитывает спин; bet равен нулю для фриспина
func (r *StatsRepo) Record(bet, payout int64, cascades int, free, bonus bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.totalSpins++
	r.totalBet += bet
	r.totalPayout += payout
	r.cascadeCounts[cascades]++
	if free {
		r.freeSpins++
	}
	if payout > 0 {
		r.winningSpins++
	}
	if bonus {
		r.bonusTriggers++
	}
	if payout > r.maxWin {
		r.maxWin = payout
	}
	if cascades > r.maxCascades {
		r.maxCascades = cascades
	}

	// Поддерживаем размер окна
	if len(r.window) == r.windowSize {
		oldest := r.window[0]
		r.window = r.window[1:]
		r.windowBet -= oldest.bet
		r.windowPay -= oldest.payout
	}
	r.window = append(r.window, spinResult{bet: bet, payout: payout})
	r.windowBet += bet
	r.windowPay += payout
}

// Stats снимок статистики
func (r *StatsRepo) Stats() model.CascadeStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	counts := make(map[int]int64, len(r.cascadeCounts))
	for k, v := range r.cascadeCounts {
		counts[k] = v
	}

	return model.CascadeStats{
		TotalSpins:    r.totalSpins,
		FreeSpins:     r.freeSpins,
		TotalBet:      r.totalBet,
		TotalPayout:   r.totalPayout,
		RTP:           percent(r.totalPayout, r.totalBet),
		WindowRTP:     percent(r.windowPay, r.windowBet),
		HitRate:       percent(r.winningSpins, r.totalSpins),
		BonusTriggers: r.bonusTriggers,
		MaxWin:        r.maxWin,
		MaxCascades:   r.maxCascades,
		CascadeCounts: counts,
	}
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

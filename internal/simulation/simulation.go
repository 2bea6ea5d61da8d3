// Package simulation прогоняет движок на большом числе спинов и считает RTP.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rabbits_den/internal/engine"
	"rabbits_den/internal/metrics"
	"rabbits_den/internal/model"
	"rabbits_den/internal/repository/cascade_stats_repo"
)

var ErrInvalidOptions = errors.New("invalid simulation options")

type Options struct {
	// Rounds число платных раундов; фриспины доигрываются сверх них
	Rounds  int
	Workers int
	Bet     int64
	// Seed базовое зерно, воркер i получает Seed+i
	Seed uint64
	// Window размер окна RTP
	Window int
	// MaxRoundSpins предел спинов в одном раунде вместе с фриспинами.
	// При равномерном выпадении скаттеры перезапускают бонус чаще, чем он заканчивается
	MaxRoundSpins int
}

const defaultMaxRoundSpins = 1000

type Report struct {
	Rounds           int64
	Spins            int64
	FreeSpins        int64
	CascadeLimitHits int64
	// TruncatedRounds раунды, оборванные по MaxRoundSpins
	TruncatedRounds int64
	Duration        time.Duration
	Stats           model.CascadeStats
}

type workerTotals struct {
	rounds    int64
	spins     int64
	freeSpins int64
	limitHits int64
	truncated int64
}

type Simulator struct {
	eng     *engine.Engine
	log     *zap.Logger
	metrics *metrics.Metrics
}

func New(eng *engine.Engine, log *zap.Logger, m *metrics.Metrics) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{eng: eng, log: log, metrics: m}
}

// Run раскидывает раунды по воркерам. У каждого воркера свой источник,
// поэтому при одинаковых опциях отчет повторяется
func (s *Simulator) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Rounds <= 0 || opts.Workers <= 0 || opts.Bet <= 0 {
		return nil, fmt.Errorf("%w: rounds %d, workers %d, bet %d",
			ErrInvalidOptions, opts.Rounds, opts.Workers, opts.Bet)
	}
	workers := min(opts.Workers, opts.Rounds)
	if opts.MaxRoundSpins <= 0 {
		opts.MaxRoundSpins = defaultMaxRoundSpins
	}

	stats := cascade_stats_repo.NewCascadeStatsRepository(opts.Window)
	totals := make([]workerTotals, workers)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := range workers {
		rounds := opts.Rounds / workers
		if i < opts.Rounds%workers {
			rounds++
		}
		g.Go(func() error {
			src := engine.NewSeededSource(opts.Seed + uint64(i))
			return s.worker(gctx, src, rounds, opts, stats, &totals[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Duration: time.Since(start),
		Stats:    stats.Stats(),
	}
	for _, t := range totals {
		report.Rounds += t.rounds
		report.Spins += t.spins
		report.FreeSpins += t.freeSpins
		report.CascadeLimitHits += t.limitHits
		report.TruncatedRounds += t.truncated
	}

	s.log.Info("simulation finished",
		zap.Int64("rounds", report.Rounds),
		zap.Int64("spins", report.Spins),
		zap.Float64("rtp", report.Stats.RTP),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// worker играет раунды так же, как сервис: платный спин сбрасывает множитель,
// фриспины доигрываются до конца
func (s *Simulator) worker(ctx context.Context, src engine.Source, rounds int, opts Options,
	stats *cascade_stats_repo.StatsRepo, t *workerTotals) error {
	bet := opts.Bet
	state := model.DefaultCascadeState()
	roundSpins := 0
	for t.rounds < int64(rounds) || state.FreeSpins > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		free := state.FreeSpins > 0
		if free && roundSpins >= opts.MaxRoundSpins {
			t.truncated++
			state = model.DefaultCascadeState()
			continue
		}

		var paid int64
		if !free {
			paid = bet
			state.Multiplier = 1
			t.rounds++
			roundSpins = 0
		}
		roundSpins++

		out, err := s.eng.Play(engine.Request{
			Bet:                bet,
			FreeGamesRemaining: state.FreeSpins,
			CurrentMultiplier:  state.Multiplier,
		}, src)
		switch {
		case errors.Is(err, engine.ErrCascadeLimit):
			// Раунд без выплаты, фриспин при этом сгорает
			t.limitHits++
			s.metrics.ObserveCascadeLimit()
			stats.Record(paid, 0, 0, free, false)
			if free {
				state.FreeSpins--
			}
			t.spins++
			continue
		case err != nil:
			return err
		}

		t.spins++
		if free {
			t.freeSpins++
		}
		stats.Record(paid, out.TotalWin, out.CascadeCount(), free, out.BonusTriggered)
		s.metrics.ObserveSpin(free, paid, out.TotalWin, out.CascadeCount(), out.BonusTriggered)

		state = model.CascadeState{FreeSpins: out.FreeGamesRemaining, Multiplier: out.CurrentMultiplier}
		if state.FreeSpins == 0 {
			state = model.DefaultCascadeState()
		}
	}
	return nil
}

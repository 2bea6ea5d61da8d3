package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"rabbits_den/internal/config/env"
	"rabbits_den/internal/engine"
	"rabbits_den/internal/service/cascade"
	"rabbits_den/internal/simulation"
)

func main() {
	var (
		cfgPath = flag.String("config", "config.yaml", "path to cascade config")
		rounds  = flag.Int("rounds", 100000, "paid rounds to play")
		workers = flag.Int("workers", runtime.NumCPU(), "parallel workers")
		bet     = flag.Int64("bet", 10, "bet per paid round")
		seed    = flag.Uint64("seed", 1, "base seed")
		window  = flag.Int("window", 10000, "spins in the sliding RTP window")
		maxSpin = flag.Int("max-round-spins", 1000, "spins per round including free spins")
		debug   = flag.Bool("debug", false, "log every spin")
	)
	flag.Parse()

	zcfg := zap.NewDevelopmentConfig()
	if !*debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cascadeCfg, err := env.NewCascadeConfigFromYAML(*cfgPath)
	if err != nil {
		log.Fatal("failed to load cascade config", zap.Error(err))
	}
	engCfg, err := cascade.EngineConfig(cascadeCfg)
	if err != nil {
		log.Fatal("invalid cascade config", zap.Error(err))
	}
	eng, err := engine.New(engCfg, log.Named("engine"))
	if err != nil {
		log.Fatal("failed to create engine", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := simulation.New(eng, log.Named("simulation"), nil).Run(ctx, simulation.Options{
		Rounds:        *rounds,
		Workers:       *workers,
		Bet:           *bet,
		Seed:          *seed,
		Window:        *window,
		MaxRoundSpins: *maxSpin,
	})
	if err != nil {
		log.Fatal("simulation failed", zap.Error(err))
	}

	st := report.Stats
	log.Info("report",
		zap.Int64("rounds", report.Rounds),
		zap.Int64("spins", report.Spins),
		zap.Int64("free_spins", report.FreeSpins),
		zap.Int64("total_bet", st.TotalBet),
		zap.Int64("total_payout", st.TotalPayout),
		zap.Float64("rtp", st.RTP),
		zap.Float64("window_rtp", st.WindowRTP),
		zap.Float64("hit_rate", st.HitRate),
		zap.Int64("bonus_triggers", st.BonusTriggers),
		zap.Int64("max_win", st.MaxWin),
		zap.Int("max_cascades", st.MaxCascades),
		zap.Int64("cascade_limit_hits", report.CascadeLimitHits),
		zap.Int64("truncated_rounds", report.TruncatedRounds),
		zap.Duration("duration", report.Duration))
}

package cascade

import (
	"errors"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"rabbits_den/internal/config"
	"rabbits_den/internal/engine"
	"rabbits_den/internal/metrics"
	"rabbits_den/internal/model"
	"rabbits_den/internal/repository"
	"rabbits_den/internal/service"
)

var (
	ErrUnauthorized       = errors.New("user is not authenticated")
	ErrInvalidBet         = errors.New("bet is outside the allowed range")
	ErrNotEnoughBalance   = errors.New("not enough balance")
	ErrFreeSpinsActive    = errors.New("free spins are still active")
	ErrInvalidAmount      = errors.New("amount must be positive and keep the balance in range")
	ErrInvalidReplaySeed  = errors.New("server and client seeds are required")
	ErrInvalidReplayState = errors.New("free games or multiplier out of range")
)

type serv struct {
	cascadeConfig config.CascadeConfig
	engine        *engine.Engine
	txManager     trm.Manager
	cascadeRepo   repository.CascadeRepository
	userRepo      repository.UserRepository
	statsRepo     repository.CascadeStatsRepository
	metrics       *metrics.Metrics
	log           *zap.Logger
	newSource     func() (engine.Source, error)
}

type Option func(*serv)

// WithSourceFactory подменяет источник случайности живых спинов
func WithSourceFactory(f func() (engine.Source, error)) Option {
	return func(s *serv) { s.newSource = f }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *serv) { s.metrics = m }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *serv) { s.log = log }
}

// NewCascadeService Создать новый cascade сервис
func NewCascadeService(
	cfg config.CascadeConfig,
	eng *engine.Engine,
	txManager trm.Manager,
	repo repository.CascadeRepository,
	userRepo repository.UserRepository,
	statsRepo repository.CascadeStatsRepository,
	opts ...Option,
) service.CascadeService {
	s := &serv{
		cascadeConfig: cfg,
		engine:        eng,
		txManager:     txManager,
		cascadeRepo:   repo,
		userRepo:      userRepo,
		statsRepo:     statsRepo,
		log:           zap.NewNop(),
		newSource:     engine.NewSecureSource,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EngineConfig переводит конфиг игры в параметры движка
func EngineConfig(cfg config.CascadeConfig) (engine.Config, error) {
	mode, err := engine.ParseMultiplierMode(cfg.MultiplierMode())
	if err != nil {
		return engine.Config{}, err
	}

	var weights map[engine.Symbol]int
	if len(cfg.SymbolWeights()) > 0 {
		weights = make(map[engine.Symbol]int, len(cfg.SymbolWeights()))
		for token, w := range cfg.SymbolWeights() {
			sym, err := engine.ParseSymbol(token)
			if err != nil {
				return engine.Config{}, fmt.Errorf("symbol weights: %w", err)
			}
			weights[sym] = w
		}
	}

	return engine.Config{
		Rows:           cfg.Rows(),
		Cols:           cfg.Cols(),
		MinClusterSize: cfg.MinClusterSize(),
		ScatterTrigger: cfg.ScatterTrigger(),
		BonusSpins:     cfg.BonusSpins(),
		MultiplierStep: cfg.MultiplierStep(),
		MaxCascades:    cfg.MaxCascades(),
		MaxWinXBet:     cfg.MaxWinXBet(),
		MultiplierMode: mode,
		SymbolWeights:  weights,
	}, nil
}

// validateBet проверяет ставку по лимитам и шагу
func (s *serv) validateBet(bet int64) error {
	minBet, maxBet, step := s.cascadeConfig.MinBet(), s.cascadeConfig.MaxBet(), s.cascadeConfig.StepBet()
	if bet < minBet || bet > maxBet || (bet-minBet)%step != 0 {
		return fmt.Errorf("%w: bet %d, allowed %d..%d step %d", ErrInvalidBet, bet, minBet, maxBet, step)
	}
	return nil
}

// resultFromEngine переносит итог движка в модель ответа
func resultFromEngine(out *engine.Result) *model.CascadeSpinResult {
	return &model.CascadeSpinResult{
		InitialGrid:        out.InitialGrid,
		FinalGrid:          out.FinalGrid,
		Cascades:           out.Cascades,
		TotalWin:           out.TotalWin,
		Message:            out.Message,
		ScattersFound:      out.ScattersFound,
		BonusTriggered:     out.BonusTriggered,
		FreeGamesRemaining: out.FreeGamesRemaining,
		CurrentMultiplier:  out.CurrentMultiplier,
	}
}

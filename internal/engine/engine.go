package engine

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	DefaultRows           = 7
	DefaultCols           = 7
	DefaultScatterTrigger = 3
	DefaultBonusSpins     = 10
	DefaultMultiplierStep = 1
	DefaultMaxCascades    = 100

	// Верхние границы запроса
	MaxBet        int64 = 1 << 40
	MaxFreeGames        = 1 << 30
	MaxMultiplier       = 1 << 20
)

var (
	ErrInvalidBet        = errors.New("bet must be positive and at most MaxBet")
	ErrInvalidFreeGames  = errors.New("free games remaining must be in 0..MaxFreeGames")
	ErrInvalidMultiplier = errors.New("multiplier must be in 0..MaxMultiplier")
	ErrCascadeLimit      = errors.New("cascade limit exceeded")
	ErrWinOverflow       = errors.New("total win overflows int64")
)

// Config параметры математики игры
type Config struct {
	Rows           int
	Cols           int
	MinClusterSize int
	ScatterTrigger int
	BonusSpins     int
	MultiplierStep int
	// MaxCascades предел итераций каскада на спин
	MaxCascades int
	// MaxWinXBet ограничение итогового выигрыша в ставках; 0 отключает
	MaxWinXBet     int64
	MultiplierMode MultiplierMode
	// SymbolWeights веса символов при генерации; пустые означают равномерный выбор
	SymbolWeights map[Symbol]int
}

// DefaultConfig эталонная математика 7x7
func DefaultConfig() Config {
	return Config{
		Rows:           DefaultRows,
		Cols:           DefaultCols,
		MinClusterSize: DefaultMinClusterSize,
		ScatterTrigger: DefaultScatterTrigger,
		BonusSpins:     DefaultBonusSpins,
		MultiplierStep: DefaultMultiplierStep,
		MaxCascades:    DefaultMaxCascades,
		MultiplierMode: MultiplierLiteral,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("invalid grid size %dx%d", c.Rows, c.Cols)
	case c.MinClusterSize <= 0:
		return fmt.Errorf("min cluster size must be positive")
	case c.ScatterTrigger <= 0:
		return fmt.Errorf("scatter trigger must be positive")
	case c.BonusSpins < 0 || c.MultiplierStep < 0:
		return fmt.Errorf("bonus spins and multiplier step must not be negative")
	case c.MaxCascades <= 0:
		return fmt.Errorf("max cascades must be positive")
	case c.MaxWinXBet < 0:
		return fmt.Errorf("max win must not be negative")
	}
	if _, err := ParseMultiplierMode(string(c.MultiplierMode)); err != nil {
		return err
	}
	return nil
}

// Request входные данные спина; состояние бонуса хранит вызывающая сторона
type Request struct {
	Bet                int64
	FreeGamesRemaining int
	// CurrentMultiplier внешний множитель; 0 означает 1
	CurrentMultiplier int
}

// CascadeStep один шаг каскада
type CascadeStep struct {
	Clusters     []ClusterWin `json:"clusters"`
	WinningCells []Position   `json:"winning_cells"`
	Win          int64        `json:"win_amount"`
	// Grid поле после сдвига и дозаполнения
	Grid *Grid `json:"grid"`
}

// Result итог спина
type Result struct {
	InitialGrid        *Grid
	FinalGrid          *Grid
	Cascades           []CascadeStep
	TotalWin           int64
	ScattersFound      int
	BonusTriggered     bool
	FreeGamesRemaining int
	CurrentMultiplier  int
	Message            string
}

// Engine не хранит состояния между спинами и безопасен для конкурентного вызова
// при условии отдельного Source на каждый спин
type Engine struct {
	cfg       Config
	drawer    *Drawer
	detector  Detector
	evaluator Evaluator
	log       *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	drawer, err := NewWeightedDrawer(cfg.SymbolWeights)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg:       cfg,
		drawer:    drawer,
		detector:  NewDetector(cfg.MinClusterSize),
		evaluator: NewEvaluator(cfg.MultiplierMode),
		log:       log,
	}, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Play генерирует начальное поле из источника и проигрывает спин
func (e *Engine) Play(req Request, src Source) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	grid := NewGrid(e.cfg.Rows, e.cfg.Cols)
	e.drawer.Fill(grid, src)
	return e.PlayGrid(req, grid, src)
}

// PlayGrid проигрывает спин с заданного начального поля; src используется для дозаполнения
func (e *Engine) PlayGrid(req Request, initial *Grid, src Source) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial grid: %w", err)
	}
	multiplier := req.CurrentMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	// Скаттеры считаются только на начальном поле
	scatters := initial.Count(Scatter)

	var (
		cascades []CascadeStep
		totalWin int64
		current  = initial.Clone()
	)
	for {
		clusters := e.detector.Detect(current)
		if len(clusters) == 0 {
			break
		}
		if len(cascades) >= e.cfg.MaxCascades {
			e.log.Warn("cascade limit exceeded",
				zap.Int("max_cascades", e.cfg.MaxCascades),
				zap.Int64("bet", req.Bet))
			return nil, fmt.Errorf("%w: %d", ErrCascadeLimit, e.cfg.MaxCascades)
		}

		step := e.evaluator.Evaluate(current, clusters, req.Bet)
		if step.Win > math.MaxInt64-totalWin {
			return nil, ErrWinOverflow
		}
		totalWin += step.Win
		current = Resolve(current, step.WinningCells, e.drawer, src)
		if err := current.Validate(); err != nil {
			panic(fmt.Sprintf("engine: resolved grid: %v", err))
		}

		cascades = append(cascades, CascadeStep{
			Clusters:     step.Clusters,
			WinningCells: step.WinningCells,
			Win:          step.Win,
			Grid:         current,
		})
	}

	// Внешний множитель применяется до его увеличения бонусом
	if totalWin > math.MaxInt64/int64(multiplier) {
		return nil, fmt.Errorf("%w: win %d x%d", ErrWinOverflow, totalWin, multiplier)
	}
	totalWin *= int64(multiplier)
	totalWin = e.applyMaxWin(totalWin, req.Bet)

	res := &Result{
		InitialGrid:        initial.Clone(),
		FinalGrid:          current,
		Cascades:           cascades,
		TotalWin:           totalWin,
		ScattersFound:      scatters,
		FreeGamesRemaining: req.FreeGamesRemaining,
		CurrentMultiplier:  multiplier,
	}

	if res.FreeGamesRemaining > 0 {
		res.FreeGamesRemaining--
	}

	if scatters >= e.cfg.ScatterTrigger {
		res.BonusTriggered = true
		res.FreeGamesRemaining += e.cfg.BonusSpins
		res.CurrentMultiplier += e.cfg.MultiplierStep
		res.Message = fmt.Sprintf("Spin complete! You won %d free games! Multiplier is now %dx",
			e.cfg.BonusSpins, res.CurrentMultiplier)
	} else {
		res.Message = fmt.Sprintf("Spin complete! Total cascades: %d", len(cascades))
	}

	e.log.Debug("spin complete",
		zap.Int64("bet", req.Bet),
		zap.Int64("total_win", res.TotalWin),
		zap.Int("cascades", len(cascades)),
		zap.Int("scatters", scatters),
		zap.Bool("bonus", res.BonusTriggered))

	return res, nil
}

func (r *Result) CascadeCount() int { return len(r.Cascades) }

// applyMaxWin ограничивает выигрыш кратностью ставки
func (e *Engine) applyMaxWin(win, bet int64) int64 {
	if e.cfg.MaxWinXBet == 0 || e.cfg.MaxWinXBet > math.MaxInt64/bet {
		return win
	}
	if limit := bet * e.cfg.MaxWinXBet; win > limit {
		return limit
	}
	return win
}

func validate(req Request) error {
	switch {
	case req.Bet <= 0, req.Bet > MaxBet:
		return ErrInvalidBet
	case req.FreeGamesRemaining < 0, req.FreeGamesRemaining > MaxFreeGames:
		return ErrInvalidFreeGames
	case req.CurrentMultiplier < 0, req.CurrentMultiplier > MaxMultiplier:
		return ErrInvalidMultiplier
	}
	return nil
}

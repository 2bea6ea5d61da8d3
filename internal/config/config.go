package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// CascadeConfig математика игры и лимиты ставок
type CascadeConfig interface {
	Rows() int
	Cols() int
	MinClusterSize() int
	ScatterTrigger() int
	BonusSpins() int
	MultiplierStep() int
	MaxCascades() int
	MaxWinXBet() int64
	MultiplierMode() string
	SymbolWeights() map[string]int

	MinBet() int64
	MaxBet() int64
	StepBet() int64
	BonusBuyCostXBet() int64
}

type HTTPConfig interface {
	Address() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	AllowedOrigins() []string
}

type PGConfig interface {
	DSN() string
	// MaxConns ноль оставляет значение pgxpool по умолчанию
	MaxConns() int32
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type LogConfig interface {
	Level() string
	Format() string
	Output() string
	Dir() string
}

package env

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rabbits_den/internal/config"
)

const (
	cascadeConfigPathEnvName = "CASCADE_CONFIG_PATH"
	defaultCascadeConfigPath = "config.yaml"
)

type cascadeFile struct {
	Cascade cascadeYAML `yaml:"cascade"`
}

type cascadeYAML struct {
	Rows           int            `yaml:"rows"`
	Cols           int            `yaml:"cols"`
	MinClusterSize int            `yaml:"min_cluster_size"`
	ScatterTrigger int            `yaml:"scatter_trigger"`
	BonusSpins     int            `yaml:"bonus_spins"`
	MultiplierStep int            `yaml:"multiplier_step"`
	MaxCascades    int            `yaml:"max_cascades"`
	MaxWinXBet     int64          `yaml:"max_win_x_bet"`
	MultiplierMode string         `yaml:"multiplier_mode"`
	SymbolWeights  map[string]int `yaml:"symbol_weights"`

	Bet struct {
		Min  int64 `yaml:"min"`
		Max  int64 `yaml:"max"`
		Step int64 `yaml:"step"`
	} `yaml:"bet"`
	BonusBuyCostXBet int64 `yaml:"bonus_buy_cost_x_bet"`
}

type cascadeConfig struct {
	c cascadeYAML
}

func defaultCascadeYAML() cascadeYAML {
	c := cascadeYAML{
		Rows:             7,
		Cols:             7,
		MinClusterSize:   5,
		ScatterTrigger:   3,
		BonusSpins:       10,
		MultiplierStep:   1,
		MaxCascades:      100,
		MultiplierMode:   "literal",
		BonusBuyCostXBet: 100,
	}
	c.Bet.Min = 10
	c.Bet.Max = 10000
	c.Bet.Step = 10
	return c
}

// NewCascadeConfigFromEnv читает YAML по пути из CASCADE_CONFIG_PATH
func NewCascadeConfigFromEnv() (config.CascadeConfig, error) {
	return NewCascadeConfigFromYAML(getenvDefault(cascadeConfigPathEnvName, defaultCascadeConfigPath))
}

// NewCascadeConfigFromYAML читает файл; отсутствующие поля берутся по умолчанию
func NewCascadeConfigFromYAML(path string) (config.CascadeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade config: %w", err)
	}
	return ParseCascadeConfig(data)
}

func ParseCascadeConfig(data []byte) (config.CascadeConfig, error) {
	file := cascadeFile{Cascade: defaultCascadeYAML()}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse cascade config: %w", err)
	}
	c := file.Cascade

	switch {
	case c.Bet.Min <= 0:
		return nil, fmt.Errorf("min bet must be positive")
	case c.Bet.Max < c.Bet.Min:
		return nil, fmt.Errorf("max bet %d below min bet %d", c.Bet.Max, c.Bet.Min)
	case c.Bet.Step <= 0:
		return nil, fmt.Errorf("bet step must be positive")
	case c.BonusBuyCostXBet <= 0:
		return nil, fmt.Errorf("bonus buy cost must be positive")
	}

	return &cascadeConfig{c: c}, nil
}

func (c *cascadeConfig) Rows() int { return c.c.Rows }

func (c *cascadeConfig) Cols() int { return c.c.Cols }

func (c *cascadeConfig) MinClusterSize() int { return c.c.MinClusterSize }

func (c *cascadeConfig) ScatterTrigger() int { return c.c.ScatterTrigger }

func (c *cascadeConfig) BonusSpins() int { return c.c.BonusSpins }

func (c *cascadeConfig) MultiplierStep() int { return c.c.MultiplierStep }

func (c *cascadeConfig) MaxCascades() int { return c.c.MaxCascades }

func (c *cascadeConfig) MaxWinXBet() int64 { return c.c.MaxWinXBet }

func (c *cascadeConfig) MultiplierMode() string { return c.c.MultiplierMode }

func (c *cascadeConfig) SymbolWeights() map[string]int { return c.c.SymbolWeights }

func (c *cascadeConfig) MinBet() int64 { return c.c.Bet.Min }

func (c *cascadeConfig) MaxBet() int64 { return c.c.Bet.Max }

func (c *cascadeConfig) StepBet() int64 { return c.c.Bet.Step }

func (c *cascadeConfig) BonusBuyCostXBet() int64 { return c.c.BonusBuyCostXBet }

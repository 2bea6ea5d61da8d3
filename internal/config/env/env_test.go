package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCascadeConfigDefaults(t *testing.T) {
	cfg, err := ParseCascadeConfig([]byte("cascade: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Rows())
	assert.Equal(t, 7, cfg.Cols())
	assert.Equal(t, 5, cfg.MinClusterSize())
	assert.Equal(t, 3, cfg.ScatterTrigger())
	assert.Equal(t, 10, cfg.BonusSpins())
	assert.Equal(t, 100, cfg.MaxCascades())
	assert.Equal(t, "literal", cfg.MultiplierMode())
	assert.Equal(t, int64(100), cfg.BonusBuyCostXBet())
	assert.Empty(t, cfg.SymbolWeights())
}

func TestParseCascadeConfigOverrides(t *testing.T) {
	data := []byte(`
cascade:
  multiplier_mode: adjacent
  max_win_x_bet: 5000
  symbol_weights:
    l1: 10
    w: 2
  bet:
    min: 20
    max: 2000
    step: 20
`)
	cfg, err := ParseCascadeConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "adjacent", cfg.MultiplierMode())
	assert.Equal(t, int64(5000), cfg.MaxWinXBet())
	assert.Equal(t, map[string]int{"l1": 10, "w": 2}, cfg.SymbolWeights())
	assert.Equal(t, int64(20), cfg.MinBet())
	assert.Equal(t, int64(2000), cfg.MaxBet())
	assert.Equal(t, int64(20), cfg.StepBet())
}

func TestParseCascadeConfigRejectsBadBets(t *testing.T) {
	_, err := ParseCascadeConfig([]byte("cascade:\n  bet:\n    min: 100\n    max: 10\n"))
	assert.Error(t, err)

	_, err = ParseCascadeConfig([]byte("cascade:\n  bet:\n    step: 0\n"))
	assert.Error(t, err)

	_, err = ParseCascadeConfig([]byte("cascade: ["))
	assert.Error(t, err)
}

func TestNewCascadeConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cascade:\n  bonus_spins: 12\n"), 0o600))
	t.Setenv(cascadeConfigPathEnvName, path)

	cfg, err := NewCascadeConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BonusSpins())
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv(accessTokenKeyEnvName, "secret")
	t.Setenv(accessTokenDurationEnvName, "15m")
	t.Setenv(refreshTokenDurationEnvName, "720h")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), cfg.AccessTokenSecretKey())
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenDuration())

	t.Setenv(accessTokenDurationEnvName, "soon")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv(accessTokenDurationEnvName, "")
	t.Setenv(refreshTokenDurationEnvName, "")
	cfg, err = NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultRefreshTokenDuration, cfg.RefreshTokenDuration())

	t.Setenv(refreshTokenDurationEnvName, "1m")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestNewPGConfig(t *testing.T) {
	t.Setenv(pgDSNEnvName, "")
	_, err := NewPGConfig()
	assert.Error(t, err)

	t.Setenv(pgDSNEnvName, "postgres://localhost/db")
	t.Setenv(pgMaxConnsEnvName, "8")
	cfg, err := NewPGConfig()
	require.NoError(t, err)
	assert.Equal(t, int32(8), cfg.MaxConns())

	t.Setenv(pgMaxConnsEnvName, "-1")
	_, err = NewPGConfig()
	assert.Error(t, err)
}

func TestNewLogConfig(t *testing.T) {
	for _, name := range []string{logLevelEnvName, logFormatEnvName, logOutputEnvName, logDirEnvName} {
		t.Setenv(name, "")
	}
	cfg, err := NewLogConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Level())
	assert.Equal(t, "stdout", cfg.Output())

	t.Setenv(logFormatEnvName, "xml")
	_, err = NewLogConfig()
	assert.Error(t, err)
}

func TestNewHTTPConfig(t *testing.T) {
	t.Setenv(httpAddressEnvName, ":9000")
	t.Setenv(corsOriginsEnvName, "https://a.example,https://b.example")

	cfg, err := NewHTTPConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Address())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())

	t.Setenv(httpReadTimeoutEnvName, "x")
	_, err = NewHTTPConfig()
	assert.Error(t, err)
}

package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"rabbits_den/internal/config"
)

const (
	accessTokenKeyEnvName       = "ACCESS_TOKEN"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"

	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 30 * 24 * time.Hour
)

type jwtConfig struct {
	secretKey       []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewJWTConfig секрет обязателен, сроки жизни токенов имеют значения по умолчанию
func NewJWTConfig() (config.JWTConfig, error) {
	secret := os.Getenv(accessTokenKeyEnvName)
	if secret == "" {
		return nil, errors.New("access token secret key not found")
	}

	access, err := durationFromEnv(accessTokenDurationEnvName, defaultAccessTokenDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := durationFromEnv(refreshTokenDurationEnvName, defaultRefreshTokenDuration)
	if err != nil {
		return nil, err
	}
	if refresh <= access {
		return nil, fmt.Errorf("refresh token duration %s must exceed access token duration %s", refresh, access)
	}

	return &jwtConfig{
		secretKey:       []byte(secret),
		accessDuration:  access,
		refreshDuration: refresh,
	}, nil
}

func durationFromEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte { return j.secretKey }

func (j *jwtConfig) AccessTokenDuration() time.Duration { return j.accessDuration }

func (j *jwtConfig) RefreshTokenDuration() time.Duration { return j.refreshDuration }

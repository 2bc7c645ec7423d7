package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nocturnedev/auth-service/pkg/constant"
	"github.com/nocturnedev/auth-service/pkg/logger"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string
	DBURL    string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int

	BcryptCost int

	MaxActiveSessions        int
	LoginMaxAttempts         int
	LoginAttemptWindowMin    int
	LoginAttemptRetentionDay int
}

func Load() *Config {
	cfg := &Config{
		Env:                      getEnv("ENV", "development"),
		Port:                     getEnv("PORT", "8080"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		DBURL:                    mustGetEnv("DB_URL"),
		AccessTokenSecret:        mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:       mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:          getEnvAsInt("ACCESS_TOKEN_EXPIRY", constant.DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:         getEnvAsInt("REFRESH_TOKEN_EXPIRY", constant.DefaultRefreshTokenExpiryMin),
		BcryptCost:               getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		MaxActiveSessions:        getEnvAsInt("MAX_ACTIVE_SESSIONS", constant.DefaultMaxActiveSessions),
		LoginMaxAttempts:         getEnvAsInt("LOGIN_MAX_ATTEMPTS", constant.DefaultLoginMaxAttempts),
		LoginAttemptWindowMin:    getEnvAsInt("LOGIN_ATTEMPT_WINDOW", constant.DefaultLoginAttemptWindowMin),
		LoginAttemptRetentionDay: getEnvAsInt("LOGIN_ATTEMPT_RETENTION_DAYS", constant.DefaultLoginAttemptRetentionDay),
	}

	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		logger.Fatal().Msg("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return cfg
}

func (c *Config) AccessTokenExpiry() time.Duration {
	return time.Duration(c.AccessExpiryMin) * time.Minute
}

func (c *Config) RefreshTokenExpiry() time.Duration {
	return time.Duration(c.RefreshExpiryMin) * time.Minute
}

func (c *Config) LoginAttemptWindow() time.Duration {
	return time.Duration(c.LoginAttemptWindowMin) * time.Minute
}

func (c *Config) LoginAttemptRetention() time.Duration {
	return time.Duration(c.LoginAttemptRetentionDay) * 24 * time.Hour
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	logger.Fatal().Msgf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		logger.Warn().Msgf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

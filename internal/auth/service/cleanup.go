package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nocturnedev/auth-service/internal/auth/domain"
	"github.com/nocturnedev/auth-service/pkg/logger"
)

// CleanupService sweeps expired refresh tokens and blacklist entries
// and prunes aged login attempts on a schedule.
type CleanupService struct {
	tokens    domain.RefreshTokenRepository
	blacklist domain.TokenBlacklistRepository
	attempts  domain.LoginAttemptRepository

	attemptRetention time.Duration
	cron             *cron.Cron
}

func NewCleanupService(
	tokens domain.RefreshTokenRepository,
	blacklist domain.TokenBlacklistRepository,
	attempts domain.LoginAttemptRepository,
	attemptRetention time.Duration,
) *CleanupService {
	return &CleanupService{
		tokens:           tokens,
		blacklist:        blacklist,
		attempts:         attempts,
		attemptRetention: attemptRetention,
		cron:             cron.New(),
	}
}

// Start registers the sweep jobs: expired tokens and blacklist entries
// hourly, old login attempts daily.
func (c *CleanupService) Start() error {
	if _, err := c.cron.AddFunc("@hourly", func() {
		c.SweepExpired(context.Background())
	}); err != nil {
		return err
	}
	if _, err := c.cron.AddFunc("@daily", func() {
		c.PruneLoginAttempts(context.Background())
	}); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

func (c *CleanupService) Stop() {
	c.cron.Stop()
}

func (c *CleanupService) SweepExpired(ctx context.Context) {
	if n, err := c.tokens.DeleteExpired(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to sweep expired refresh tokens")
	} else if n > 0 {
		logger.Info().Int64("deleted", n).Msg("swept expired refresh tokens")
	}

	if n, err := c.blacklist.DeleteExpired(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to sweep expired blacklist entries")
	} else if n > 0 {
		logger.Info().Int64("deleted", n).Msg("swept expired blacklist entries")
	}
}

func (c *CleanupService) PruneLoginAttempts(ctx context.Context) {
	if n, err := c.attempts.DeleteOlderThan(ctx, c.attemptRetention); err != nil {
		logger.Error().Err(err).Msg("failed to prune login attempts")
	} else if n > 0 {
		logger.Info().Int64("deleted", n).Msg("pruned old login attempts")
	}
}

package server

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/robfig/cron/v3"
)

type tokenSweeperSvc interface {
	SweepExpiredTokens(ctx context.Context) (int64, error)
}

// newTokenSweeper schedules the periodic purge of expired refresh tokens.
func newTokenSweeper(spec string, svc tokenSweeperSvc, l logging.Logger) (*cron.Cron, error) {
	logger := l.With("module", "token_sweeper")
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		n, err := svc.SweepExpiredTokens(ctx)
		if err != nil {
			logger.Error(ctx, "refresh token sweep failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info(ctx, "expired refresh tokens removed", "count", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("token sweep schedule %q: %w", spec, err)
	}
	return c, nil
}

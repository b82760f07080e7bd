package sqlc

import (
	"context"
	"net"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager keeps per-server game counters. A manager without a
// querier records nothing.
type AnalyticsManager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewAnalyticsManager(queries Querier, serverIpNet net.IPNet) *AnalyticsManager {
	return &AnalyticsManager{
		queries:  queries,
		serverIp: pqtype.Inet{IPNet: serverIpNet, Valid: true},
	}
}

func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func (a *AnalyticsManager) ServerIp() pqtype.Inet {
	return a.serverIp
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.IncrementGamesCreatedCount(ctx, a.serverIp)
}

// RecordMatchResult stores the shots of a finished match and whether the
// player won (positive status) or lost (negative status).
func (a *AnalyticsManager) RecordMatchResult(ctx context.Context, matchStatus int, shotsFired int) error {
	if !a.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	if err := a.queries.AddShotsFiredCount(ctx, AddShotsFiredCountParams{ServerIp: a.serverIp, ShotsFired: int64(shotsFired)}); err != nil {
		return err
	}

	switch {
	case matchStatus > 0:
		return a.queries.IncrementGamesWonCount(ctx, a.serverIp)
	case matchStatus < 0:
		return a.queries.IncrementGamesLostCount(ctx, a.serverIp)
	default:
		return nil
	}
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.GetGamesCreatedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) GetAnalytics(ctx context.Context) (GameServerAnalytic, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.GetAnalytics(ctx, a.serverIp)
}

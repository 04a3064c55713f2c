package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/repomanager"
)

// MaxAdjustment bounds the magnitude of a single balance change.
const MaxAdjustment int64 = 10000

// BalanceLedger applies bounded, non-negative-clamped changes to a user's
// coin balance.
type BalanceLedger struct {
	repos   repomanager.RepositoryManager
	log     logging.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewBalanceLedger(m repomanager.RepositoryManager, log logging.Logger, mt *metrics.Metrics) *BalanceLedger {
	return &BalanceLedger{
		repos:   m,
		log:     log.With("module", "ledger"),
		metrics: mt,
		now:     time.Now,
	}
}

// Adjust adds delta to the user's balance, clamping the result at zero, and
// returns the new balance. A zero delta returns user.Coins without touching
// the store. The read and write happen under a row lock so concurrent
// adjustments of one user serialize.
func (l *BalanceLedger) Adjust(ctx context.Context, user *models.User, delta int64) (int64, error) {
	if delta == 0 {
		l.metrics.IncrementAdjustment(metrics.AdjustNoop)
		return user.Coins, nil
	}
	if delta > MaxAdjustment || delta < -MaxAdjustment {
		l.metrics.IncrementAdjustment(metrics.AdjustRejected)
		return 0, fmt.Errorf("%w: amount too large, limit is %d", common.ErrInvalidArgument, MaxAdjustment)
	}

	var balance int64
	var clamped bool

	err := l.repos.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := l.repos.Users(tx)

		current, err := repo.GetByIDForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}

		balance = current.Coins + delta
		if balance < 0 {
			balance = 0
			clamped = true
		}

		return repo.UpdateCoins(ctx, current.ID, balance, l.now().UTC())
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorNotFound
		}
		return 0, storeError("adjust coins", err)
	}

	if clamped {
		l.metrics.IncrementAdjustment(metrics.AdjustClamped)
	} else {
		l.metrics.IncrementAdjustment(metrics.AdjustApplied)
	}
	l.log.Info(ctx, "coins adjusted", "user_id", user.ID, "delta", delta, "balance", balance, "clamped", clamped)

	return balance, nil
}

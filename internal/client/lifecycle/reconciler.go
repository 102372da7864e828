package lifecycle

import (
	"context"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

// StaleIDs lists paid properties whose last payment falls in a month before
// the one containing now. Paid rows without a payment time are left alone.
func StaleIDs(now time.Time, loc *time.Location, props []*models.Property) []string {
	now = now.In(loc)
	cy, cm, _ := now.Date()

	var ids []string
	for _, p := range props {
		if !p.Paid || p.LastPaymentAt == nil {
			continue
		}
		y, m, _ := p.LastPaymentAt.In(loc).Date()
		if y < cy || (y == cy && m < cm) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Reconciler un-marks payments left over from a month whose reset was missed
// because no session was open at the rollover.
type Reconciler struct {
	repo   Repository
	logger logging.Logger
	now    func() time.Time
	loc    *time.Location
}

func NewReconciler(repo Repository, l logging.Logger, now func() time.Time, loc *time.Location) *Reconciler {
	return &Reconciler{repo: repo, logger: l.With("module", "reconciler"), now: now, loc: loc}
}

// Run fetches the user's properties and resets the stale ones in a single
// request. It returns how many ids were sent.
func (r *Reconciler) Run(ctx context.Context, userID string) (int, error) {
	props, err := r.repo.ListForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	ids := StaleIDs(r.now(), r.loc, props)
	if len(ids) == 0 {
		return 0, nil
	}

	if _, err := r.repo.UpdateMany(ctx, ids, models.UnpaidPatch()); err != nil {
		return 0, err
	}
	r.logger.Info(ctx, "stale payments reset", "count", len(ids))
	return len(ids), nil
}

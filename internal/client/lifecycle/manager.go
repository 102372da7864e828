package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

var (
	ErrUnknownProperty = errors.New("property not in current set")
	ErrAlreadyPaid     = errors.New("property already paid this month")
)

// Repository is the store boundary the Manager works through.
type Repository interface {
	ListForUser(ctx context.Context, userID string) ([]*models.Property, error)
	Insert(ctx context.Context, userID string, f models.PropertyFields) (*models.Property, error)
	Update(ctx context.Context, id string, patch models.PropertyPatch) error
	UpdateMany(ctx context.Context, ids []string, patch models.PropertyPatch) (int64, error)
	ResetAll(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type Options struct {
	Location        *time.Location
	RefreshInterval time.Duration
	Now             func() time.Time
}

// Manager owns the in-memory property set of one authenticated user.
type Manager struct {
	repo   Repository
	userID string
	logger logging.Logger
	now    func() time.Time
	loc    *time.Location

	reconciler *Reconciler
	scheduler  *MonthlyResetScheduler
	refresher  *DailyRefresher

	mu   sync.Mutex
	snap atomic.Pointer[[]*models.Property]

	stopOnce sync.Once
	cancel   context.CancelFunc
}

func NewManager(repo Repository, userID string, l logging.Logger, opts Options) *Manager {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Manager{
		repo:   repo,
		userID: userID,
		logger: l.With("module", "lifecycle", "user_id", userID),
		now:    opts.Now,
		loc:    opts.Location,
	}
	m.reconciler = NewReconciler(repo, m.logger, m.now, m.loc)
	m.scheduler = NewMonthlyResetScheduler(m.monthlyReset, m.logger, m.now, m.loc)
	m.refresher = NewDailyRefresher(opts.RefreshInterval, m.RefreshOverdue)

	empty := []*models.Property{}
	m.snap.Store(&empty)
	return m
}

func (m *Manager) UserID() string { return m.userID }

func (m *Manager) today() time.Time {
	return m.now().In(m.loc)
}

// Start loads the set, reconciles stale payments, stamps overdue days and
// starts the timers. A load failure is returned, but the timers run anyway
// so the next reset or reload can recover.
func (m *Manager) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel

	loadErr := m.Reload(ctx)
	if loadErr != nil {
		m.logger.Error(ctx, "initial load failed", "error", loadErr)
	} else if _, err := m.Reconcile(ctx); err != nil {
		m.logger.Warn(ctx, "reconciliation deferred to next session", "error", err)
	}

	m.refresher.Start()
	if err := m.scheduler.Start(runCtx); err != nil {
		m.logger.Error(ctx, "monthly scheduler not started", "error", err)
	}
	return loadErr
}

// Stop cancels both timers. It is safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
		m.scheduler.Stop()
		m.refresher.Stop()
	})
}

func (m *Manager) SchedulerState() SchedulerState { return m.scheduler.State() }

func (m *Manager) NextMonthlyCheck() time.Time { return m.scheduler.NextWake() }

func (m *Manager) current() []*models.Property {
	return *m.snap.Load()
}

// publish stamps overdue days on next and swaps it in. Callers hold m.mu.
func (m *Manager) publish(next []*models.Property) {
	stamped := StampOverdue(m.today(), next)
	m.snap.Store(&stamped)
}

// Properties returns a copy of the current snapshot, newest first.
func (m *Manager) Properties() []*models.Property {
	cur := m.current()
	out := make([]*models.Property, len(cur))
	for i, p := range cur {
		out[i] = p.Clone()
	}
	return out
}

func (m *Manager) Filter(f models.StatusFilter) []*models.Property {
	return models.FilterByStatus(m.Properties(), f)
}

func (m *Manager) Get(id string) (*models.Property, bool) {
	for _, p := range m.current() {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return nil, false
}

// Reload replaces the set with what the store holds now.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloadLocked(ctx)
}

func (m *Manager) reloadLocked(ctx context.Context) error {
	props, err := m.repo.ListForUser(ctx, m.userID)
	if err != nil {
		return err
	}
	m.publish(props)
	return nil
}

// RefreshOverdue recomputes overdue days without touching the store.
func (m *Manager) RefreshOverdue() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publish(m.current())
}

// Reconcile resets payments from earlier months and reloads when anything
// changed. It returns the number of properties reset. Writers are held off
// from the list until the reload, so a payment made meanwhile is never reset.
func (m *Manager) Reconcile(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.reconciler.Run(ctx, m.userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if err := m.reloadLocked(ctx); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (m *Manager) monthlyReset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.repo.ResetAll(ctx, m.userID)
	if err != nil {
		return err
	}
	m.logger.Info(ctx, "paid flags reset", "count", n)
	return m.reloadLocked(ctx)
}

func (m *Manager) Add(ctx context.Context, f models.PropertyFields) (*models.Property, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.repo.Insert(ctx, m.userID, f)
	if err != nil {
		return nil, err
	}

	cur := m.current()
	next := make([]*models.Property, 0, len(cur)+1)
	next = append(next, p)
	next = append(next, cur...)
	m.publish(next)

	out, _ := m.getLocked(p.ID)
	return out, nil
}

func (m *Manager) Edit(ctx context.Context, id string, f models.PropertyFields) (*models.Property, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return m.patch(ctx, id, models.PatchFromFields(f))
}

// Pay records a payment now. The paid flag, the payment time and the
// cleared overdue count become visible together. A property already paid
// this month is refused so its payment time is kept.
func (m *Manager) Pay(ctx context.Context, id string) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return nil, ErrUnknownProperty
	}
	if m.current()[idx].Paid {
		return nil, ErrAlreadyPaid
	}
	return m.patchLocked(ctx, idx, models.PaymentPatch(m.now()))
}

func (m *Manager) patch(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return nil, ErrUnknownProperty
	}
	return m.patchLocked(ctx, idx, patch)
}

func (m *Manager) patchLocked(ctx context.Context, idx int, patch models.PropertyPatch) (*models.Property, error) {
	cur := m.current()
	id := cur[idx].ID
	if err := m.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	next := make([]*models.Property, len(cur))
	copy(next, cur)
	changed := cur[idx].Clone()
	patch.Apply(changed)
	next[idx] = changed
	m.publish(next)

	out, _ := m.getLocked(id)
	return out, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return ErrUnknownProperty
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return err
	}

	cur := m.current()
	next := make([]*models.Property, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	m.publish(next)
	return nil
}

func (m *Manager) indexLocked(id string) int {
	for i, p := range m.current() {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) getLocked(id string) (*models.Property, bool) {
	if i := m.indexLocked(id); i >= 0 {
		return m.current()[i].Clone(), true
	}
	return nil, false
}

package lifecycle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/robfig/cron/v3"
)

type SchedulerState int32

const (
	Idle SchedulerState = iota
	Resetting
)

func (s SchedulerState) String() string {
	if s == Resetting {
		return "resetting"
	}
	return "idle"
}

// MonthlyResetScheduler wakes at every local midnight and runs reset when
// the new day is the first of the month. A failed reset is logged and waits
// for the next wake.
type MonthlyResetScheduler struct {
	cron   *cron.Cron
	reset  func(ctx context.Context) error
	now    func() time.Time
	loc    *time.Location
	logger logging.Logger

	state atomic.Int32

	mu      sync.Mutex
	cancel  context.CancelFunc
	entry   cron.EntryID
	running bool
}

func NewMonthlyResetScheduler(reset func(ctx context.Context) error, l logging.Logger, now func() time.Time, loc *time.Location) *MonthlyResetScheduler {
	return &MonthlyResetScheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		reset:  reset,
		now:    now,
		loc:    loc,
		logger: l.With("module", "monthly_reset"),
	}
}

func (s *MonthlyResetScheduler) State() SchedulerState {
	return SchedulerState(s.state.Load())
}

// Start arms the midnight wake. Calling Start twice is a no-op. A stopped
// scheduler is not meant to be restarted.
func (s *MonthlyResetScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	if s.entry == 0 {
		id, err := s.cron.AddFunc("@midnight", func() { s.wake(runCtx) })
		if err != nil {
			cancel()
			return err
		}
		s.entry = id
	}
	s.cancel = cancel
	s.cron.Start()
	s.running = true
	return nil
}

// NextWake reports when the scheduler will next run; zero before Start.
func (s *MonthlyResetScheduler) NextWake() time.Time {
	return s.cron.Entry(s.entryID()).Next
}

func (s *MonthlyResetScheduler) entryID() cron.EntryID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry
}

func (s *MonthlyResetScheduler) wake(ctx context.Context) {
	today := s.now().In(s.loc)
	if today.Day() != 1 {
		return
	}
	if !s.state.CompareAndSwap(int32(Idle), int32(Resetting)) {
		return
	}
	defer s.state.Store(int32(Idle))

	if err := s.reset(ctx); err != nil {
		s.logger.Error(ctx, "monthly reset failed", "error", err)
		return
	}
	s.logger.Info(ctx, "monthly reset done", "month", today.Format("2006-01"))
}

// Stop cancels the pending wake and waits for an in-flight reset.
func (s *MonthlyResetScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	<-s.cron.Stop().Done()
	s.running = false
}

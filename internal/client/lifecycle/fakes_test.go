package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/shopspring/decimal"
)

var errStore = errors.New("store down")

// memRepo is an in-memory store keyed by id, newest first.
type memRepo struct {
	mu    sync.Mutex
	rows  []*models.Property
	seq   int
	clock *fakeClock

	failList, failInsert, failUpdate, failMany, failReset, failDelete error

	listCalls, manyCalls, resetCalls int
	lastManyIDs                      []string
}

func (r *memRepo) ListForUser(ctx context.Context, userID string) ([]*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]*models.Property, len(r.rows))
	for i, p := range r.rows {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *memRepo) Insert(ctx context.Context, userID string, f models.PropertyFields) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert != nil {
		return nil, r.failInsert
	}
	r.seq++
	p := &models.Property{
		ID:            fmt.Sprintf("p%d", r.seq),
		Address:       f.Address,
		TenantName:    f.TenantName,
		RentAmount:    f.RentAmount,
		DueDay:        f.DueDay,
		ContractStart: f.ContractStart,
		ContractEnd:   f.ContractEnd,
	}
	if r.clock != nil {
		p.CreatedAt = r.clock.Now()
	}
	r.rows = append([]*models.Property{p}, r.rows...)
	return p.Clone(), nil
}

func (r *memRepo) find(id string) *models.Property {
	for _, p := range r.rows {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *memRepo) Update(ctx context.Context, id string, patch models.PropertyPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	p := r.find(id)
	if p == nil {
		return errors.New("not found")
	}
	patch.Apply(p)
	return nil
}

func (r *memRepo) UpdateMany(ctx context.Context, ids []string, patch models.PropertyPatch) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manyCalls++
	r.lastManyIDs = ids
	if r.failMany != nil {
		return 0, r.failMany
	}
	var n int64
	for _, id := range ids {
		if p := r.find(id); p != nil {
			patch.Apply(p)
			n++
		}
	}
	return n, nil
}

func (r *memRepo) ResetAll(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetCalls++
	if r.failReset != nil {
		return 0, r.failReset
	}
	for _, p := range r.rows {
		p.Paid = false
	}
	return int64(len(r.rows)), nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete != nil {
		return r.failDelete
	}
	for i, p := range r.rows {
		if p.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memRepo) set(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// blockingResetRepo holds ResetAll until release is closed.
type blockingResetRepo struct {
	*memRepo
	entered chan struct{}
	release chan struct{}
}

func (r *blockingResetRepo) ResetAll(ctx context.Context, userID string) (int64, error) {
	close(r.entered)
	<-r.release
	return r.memRepo.ResetAll(ctx, userID)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func fields(dueDay int) models.PropertyFields {
	return models.PropertyFields{
		Address:       "Rua Augusta 100",
		TenantName:    "Pedro",
		RentAmount:    decimal.NewFromInt(1000),
		DueDay:        dueDay,
		ContractStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ContractEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

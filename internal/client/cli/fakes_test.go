package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/config"
	"github.com/dmitrijs2005/rentkeeper/internal/client/lifecycle"
	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/client/repositories/properties"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type fakeAuth struct {
	resumeID  *services.Identity
	resumeErr error

	loginID   *services.Identity
	loginErr  error
	loginUser string
	loginPass string

	regUser string
	regErr  error

	logoutCalls int
	logoutErr   error
	pingErr     error
}

func (f *fakeAuth) Register(_ context.Context, user string, pw []byte) error {
	f.regUser = user
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, user string, pw []byte) (*services.Identity, error) {
	f.loginUser, f.loginPass = user, string(pw)
	return f.loginID, f.loginErr
}

func (f *fakeAuth) Resume(context.Context) (*services.Identity, error) {
	return f.resumeID, f.resumeErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

type fakeReports struct {
	name     string
	exported []*models.Property
	key      string
	url      string
	err      error
	history  []*models.Export
}

func (f *fakeReports) Export(_ context.Context, name string, props []*models.Property) (string, error) {
	f.name, f.exported = name, props
	return f.key, f.err
}

func (f *fakeReports) DownloadURL(_ context.Context, key string) (string, error) {
	return f.url + key, f.err
}

func (f *fakeReports) History(context.Context) ([]*models.Export, error) {
	return f.history, f.err
}

// memRepo is a store stand-in for lifecycle.Manager.
type memRepo struct {
	mu      sync.Mutex
	rows    []*models.Property
	seq     int
	fail    error
	deleted []string
}

func (r *memRepo) failWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

func (r *memRepo) ListForUser(context.Context, string) ([]*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, &properties.StoreError{Op: "list", Err: r.fail}
	}
	out := make([]*models.Property, len(r.rows))
	for i, p := range r.rows {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *memRepo) Insert(_ context.Context, _ string, f models.PropertyFields) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, &properties.StoreError{Op: "insert", Err: r.fail}
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
		CreatedAt:     testNow,
	}
	r.rows = append([]*models.Property{p}, r.rows...)
	return p.Clone(), nil
}

func (r *memRepo) Update(_ context.Context, id string, patch models.PropertyPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return &properties.StoreError{Op: "update", Err: r.fail}
	}
	for _, p := range r.rows {
		if p.ID == id {
			patch.Apply(p)
			return nil
		}
	}
	return &properties.StoreError{Op: "update", Err: client.ErrNotFound}
}

func (r *memRepo) UpdateMany(_ context.Context, ids []string, patch models.PropertyPatch) (int64, error) {
	var n int64
	for _, id := range ids {
		if err := r.Update(context.Background(), id, patch); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *memRepo) ResetAll(ctx context.Context, _ string) (int64, error) {
	r.mu.Lock()
	ids := make([]string, len(r.rows))
	for i, p := range r.rows {
		ids[i] = p.ID
	}
	r.mu.Unlock()
	return r.UpdateMany(ctx, ids, models.UnpaidPatch())
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return &properties.StoreError{Op: "delete", Err: r.fail}
	}
	for i, p := range r.rows {
		if p.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return &properties.StoreError{Op: "delete", Err: client.ErrNotFound}
}

func seedRow(id, address string, dueDay int, paid bool) *models.Property {
	return &models.Property{
		ID:            id,
		Address:       address,
		TenantName:    "Tenant " + id,
		RentAmount:    decimal.NewFromInt(800),
		DueDay:        dueDay,
		Paid:          paid,
		ContractStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ContractEnd:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		CreatedAt:     testNow.Add(-time.Hour),
	}
}

type harness struct {
	app     *App
	auth    *fakeAuth
	reports *fakeReports
	repo    *memRepo
	out     *bytes.Buffer
	users   []string
}

// newHarness builds an App reading input and backed by a real lifecycle
// manager over memRepo.
func newHarness(t *testing.T, input string) *harness {
	t.Helper()

	h := &harness{
		auth:    &fakeAuth{},
		reports: &fakeReports{key: "reports/u1/k.csv", url: "https://s3.local/"},
		repo:    &memRepo{},
		out:     &bytes.Buffer{},
	}
	factory := func(userID string) PropertyManager {
		h.users = append(h.users, userID)
		return lifecycle.NewManager(h.repo, userID, logging.NewNopLogger(), lifecycle.Options{
			Location:        time.UTC,
			RefreshInterval: time.Hour,
			Now:             func() time.Time { return testNow },
		})
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	h.app = newApp(cfg, logging.NewNopLogger(), h.auth, h.reports, factory, strings.NewReader(input), h.out)
	t.Cleanup(h.app.endSession)
	return h
}

func (h *harness) loginAs(t *testing.T, id string) {
	t.Helper()
	h.app.beginSession(context.Background(), &services.Identity{UserID: id, Username: id + "@example.com"})
}

func stubCredentials(t *testing.T, password string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { getPassword = orig })
}

var errBoom = errors.New("boom")

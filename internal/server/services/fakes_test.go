package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/properties"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.GetUserByLogin(ctx, id)
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error
	created   []string

	revoked     string
	sweptBefore time.Time
	countOut    int64
	countErr    error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error { return f.delErr }

func (f *fakeRefreshRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	f.revoked = userID
	return f.countOut, f.countErr
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.sweptBefore = now
	return f.countOut, f.countErr
}

// fakePropertiesRepo keeps rows in a map keyed by id.
type fakePropertiesRepo struct {
	rows map[string]*models.Property

	created  *models.Property
	updated  *models.PropertyPatch
	manyIDs  []string
	resetFor string
	err      error
}

func newFakePropertiesRepo(rows ...*models.Property) *fakePropertiesRepo {
	f := &fakePropertiesRepo{rows: map[string]*models.Property{}}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakePropertiesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Property
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertiesRepo) Get(ctx context.Context, userID, id string) (*models.Property, error) {
	p, ok := f.rows[id]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertiesRepo) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = p
	p.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return p, nil
}

func (f *fakePropertiesRepo) Update(ctx context.Context, userID, id string, patch *models.PropertyPatch) error {
	f.updated = patch
	return f.err
}

func (f *fakePropertiesRepo) UpdateMany(ctx context.Context, userID string, ids []string, patch *models.PropertyPatch) (int64, error) {
	f.manyIDs = ids
	f.updated = patch
	return int64(len(ids)), f.err
}

func (f *fakePropertiesRepo) ResetPaid(ctx context.Context, userID string) (int64, error) {
	f.resetFor = userID
	return int64(len(f.rows)), f.err
}

func (f *fakePropertiesRepo) Delete(ctx context.Context, userID, id string) error {
	if _, ok := f.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	p *fakePropertiesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Properties(db dbx.DBTX) properties.Repository { return m.p }

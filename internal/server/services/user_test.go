package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/server/auth"
	"github.com/dmitrijs2005/rentkeeper/internal/server/config"
	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, rm *fakeRepoManager) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg), mock
}

func TestRefreshToken_Success(t *testing.T) {
	refresh := &fakeRefreshRepo{findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)}}
	s, mock := newUserService(t, &fakeRepoManager{r: refresh})
	mock.ExpectBegin()
	mock.ExpectCommit()

	pair, err := s.RefreshToken(context.Background(), "refresh-xyz")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Len(t, pair.RefreshToken, 64)
	assert.Equal(t, []string{"u1"}, refresh.created)

	uid, err := auth.GetUserIDFromToken(pair.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Expired(t *testing.T) {
	refresh := &fakeRefreshRepo{findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(-time.Minute)}}
	s, _ := newUserService(t, &fakeRepoManager{r: refresh})

	_, err := s.RefreshToken(context.Background(), "r")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefreshToken_Unknown(t *testing.T) {
	s, _ := newUserService(t, &fakeRepoManager{r: &fakeRefreshRepo{findErr: common.ErrorNotFound}})

	_, err := s.RefreshToken(context.Background(), "r")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRefreshToken_FindErr(t *testing.T) {
	s, _ := newUserService(t, &fakeRepoManager{r: &fakeRefreshRepo{findErr: errBoom{}}})

	_, err := s.RefreshToken(context.Background(), "r")
	require.Error(t, err)
	assert.Regexp(t, `error searching refresh token: .*boom`, err.Error())
}

func TestRefreshToken_DeleteErrRollsBack(t *testing.T) {
	refresh := &fakeRefreshRepo{
		findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
		delErr:  errBoom{},
	}
	s, mock := newUserService(t, &fakeRepoManager{r: refresh})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.RefreshToken(context.Background(), "r")
	require.Error(t, err)
	assert.Regexp(t, `error deleting refresh token: .*boom`, err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_CreateErrRollsBack(t *testing.T) {
	refresh := &fakeRefreshRepo{
		findOut:   &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
		createErr: errBoom{},
	}
	s, mock := newUserService(t, &fakeRepoManager{r: refresh})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.RefreshToken(context.Background(), "r")
	assert.ErrorIs(t, err, common.ErrorInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{createOut: &models.User{ID: "42", UserName: "alice"}}})
		u, err := s.Register(context.Background(), " alice ", []byte("s"), []byte("v"))
		require.NoError(t, err)
		assert.Equal(t, "42", u.ID)
	})

	t.Run("repository error", func(t *testing.T) {
		s, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrorConflict}})
		_, err := s.Register(context.Background(), "bob", []byte("s"), []byte("v"))
		assert.ErrorIs(t, err, common.ErrorConflict)
	})

	t.Run("blank username", func(t *testing.T) {
		s, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{}})
		_, err := s.Register(context.Background(), "  ", []byte("s"), []byte("v"))
		assert.ErrorIs(t, err, common.ErrorValidation)
	})
}

func TestGetSalt(t *testing.T) {
	s, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getOut: &models.User{Salt: []byte("SALT")}}})
	salt, err := s.GetSalt(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("SALT"), salt)

	s2, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}})
	salt2, err := s2.GetSalt(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Len(t, salt2, 32)

	s3, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}})
	_, err = s3.GetSalt(context.Background(), "xx")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		users   *fakeUsersRepo
		cand    string
		wantErr error
	}{
		{name: "unknown user", users: &fakeUsersRepo{getErr: common.ErrorNotFound}, cand: "x", wantErr: common.ErrorUnauthorized},
		{name: "db failure", users: &fakeUsersRepo{getErr: errBoom{}}, cand: "x", wantErr: common.ErrorInternal},
		{name: "wrong verifier", users: &fakeUsersRepo{getOut: &models.User{ID: "u1", Verifier: []byte("right")}}, cand: "wrong", wantErr: common.ErrorUnauthorized},
		{name: "ok", users: &fakeUsersRepo{getOut: &models.User{ID: "u1", Verifier: []byte("right")}}, cand: "right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newUserService(t, &fakeRepoManager{u: tt.users, r: &fakeRefreshRepo{}})
			pair, err := s.Login(context.Background(), "u", []byte(tt.cand))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	s, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getOut: &models.User{ID: "u1", UserName: "alice"}}})
	u, err := s.CurrentUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)

	s2, _ := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}})
	_, err = s2.CurrentUser(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLogoutAndSweep(t *testing.T) {
	refresh := &fakeRefreshRepo{countOut: 2}
	s, _ := newUserService(t, &fakeRepoManager{r: refresh})
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Logout(context.Background(), "u1"))
	assert.Equal(t, "u1", refresh.revoked)

	n, err := s.SweepExpiredTokens(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, now, refresh.sweptBefore)

	refresh.countErr = errBoom{}
	assert.Error(t, s.Logout(context.Background(), "u1"))
	_, err = s.SweepExpiredTokens(context.Background())
	assert.Error(t, err)
}

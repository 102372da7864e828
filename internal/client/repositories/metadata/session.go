package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
)

// Session is what the CLI needs to resume without asking for a password.
type Session struct {
	Username     string
	RefreshToken string
}

// SessionStore reads and writes the Session record atomically.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyUsername, []byte(sess.Username)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyRefreshToken, []byte(sess.RefreshToken))
	})
}

// Load returns ok=false when no complete session is stored.
func (s *SessionStore) Load(ctx context.Context) (Session, bool, error) {
	repo := NewSQLiteRepository(s.db)

	user, err := repo.Get(ctx, KeyUsername)
	if err != nil {
		return Session{}, false, err
	}
	token, err := repo.Get(ctx, KeyRefreshToken)
	if err != nil {
		return Session{}, false, err
	}
	if len(user) == 0 || len(token) == 0 {
		return Session{}, false, nil
	}
	return Session{Username: string(user), RefreshToken: string(token)}, true, nil
}

// UpdateRefreshToken stores a rotated token for the current session.
func (s *SessionStore) UpdateRefreshToken(ctx context.Context, token string) error {
	return NewSQLiteRepository(s.db).Set(ctx, KeyRefreshToken, []byte(token))
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return NewSQLiteRepository(s.db).Clear(ctx)
}

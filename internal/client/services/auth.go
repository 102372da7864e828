// Package services contains application services for the RentKeeper client.
// This file defines the authentication service: register, login, session
// resume from the stored refresh token, and logout.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/rentkeeper/internal/cryptox"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

// AuthClient is the part of client.GRPCClient used for authentication.
type AuthClient interface {
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error
	Resume(ctx context.Context, refreshToken string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	CurrentUser(ctx context.Context) (string, string, error)
	Tokens() (string, string)
	OnRefreshTokenRotated(fn func(refreshToken string))
}

// SessionStore persists the session between runs.
type SessionStore interface {
	Save(ctx context.Context, s metadata.Session) error
	Load(ctx context.Context) (metadata.Session, bool, error)
	UpdateRefreshToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Identity is the authenticated user of a session.
type Identity struct {
	UserID   string
	Username string
}

type AuthService struct {
	client   AuthClient
	sessions SessionStore
	logger   logging.Logger
}

// NewAuthService wires token rotation to the session store so that a resumed
// session always holds the latest refresh token.
func NewAuthService(c AuthClient, s SessionStore, l logging.Logger) *AuthService {
	a := &AuthService{client: c, sessions: s, logger: l.With("module", "auth")}
	c.OnRefreshTokenRotated(a.persistRotation)
	return a
}

func (a *AuthService) persistRotation(token string) {
	ctx := context.Background()
	if err := a.sessions.UpdateRefreshToken(ctx, token); err != nil {
		a.logger.Warn(ctx, "refresh token not persisted", "error", err)
	}
}

// Register creates an account. The password never leaves the client: the
// store receives a random salt and a verifier of the derived key.
func (a *AuthService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	return a.client.Register(ctx, username, salt, cryptox.MakeVerifier(key))
}

func (a *AuthService) Login(ctx context.Context, username string, password []byte) (*Identity, error) {
	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	if err := a.client.Login(ctx, username, cryptox.MakeVerifier(key)); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	id, err := a.identity(ctx)
	if err != nil {
		return nil, err
	}

	_, refresh := a.client.Tokens()
	if err := a.sessions.Save(ctx, metadata.Session{Username: id.Username, RefreshToken: refresh}); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return id, nil
}

// Resume restores the stored session. It returns (nil, nil) when there is
// nothing to resume, and clears a session the store no longer accepts.
func (a *AuthService) Resume(ctx context.Context) (*Identity, error) {
	sess, ok, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("session loading error: %w", err)
	}
	if !ok {
		return nil, nil
	}

	if err := a.client.Resume(ctx, sess.RefreshToken); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if err := a.sessions.Clear(ctx); err != nil {
				a.logger.Warn(ctx, "rejected session not cleared", "error", err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("resume error: %w", err)
	}
	return a.identity(ctx)
}

func (a *AuthService) identity(ctx context.Context) (*Identity, error) {
	id, name, err := a.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user error: %w", err)
	}
	return &Identity{UserID: id, Username: name}, nil
}

// Logout revokes the session on the store and wipes it locally. The local
// copy is removed even if the store cannot be reached.
func (a *AuthService) Logout(ctx context.Context) error {
	remoteErr := a.client.Logout(ctx)
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	return remoteErr
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

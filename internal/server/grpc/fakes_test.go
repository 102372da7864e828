package grpc

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/services"
)

type fakeUser struct {
	regResp *models.User
	regErr  error

	saltResp []byte
	saltErr  error

	pair    *services.TokenPair
	authErr error

	current    *models.User
	currentErr error

	loggedOut string
}

func (f *fakeUser) Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error) {
	return f.regResp, f.regErr
}

func (f *fakeUser) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return f.saltResp, f.saltErr
}

func (f *fakeUser) Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error) {
	return f.pair, f.authErr
}

func (f *fakeUser) RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error) {
	return f.pair, f.authErr
}

func (f *fakeUser) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return f.current, f.currentErr
}

func (f *fakeUser) Logout(ctx context.Context, userID string) error {
	f.loggedOut = userID
	return nil
}

type fakeProperty struct {
	list []*models.Property
	err  error

	gotUserID string
	gotID     string
	gotIDs    []string
	gotPatch  *models.PropertyPatch
	gotNew    *models.Property
}

func (f *fakeProperty) List(ctx context.Context, userID string) ([]*models.Property, error) {
	f.gotUserID = userID
	return f.list, f.err
}

func (f *fakeProperty) Create(ctx context.Context, userID string, p *models.Property) (*models.Property, error) {
	f.gotUserID = userID
	f.gotNew = p
	if f.err != nil {
		return nil, f.err
	}
	p.ID = "new-id"
	p.UserID = userID
	return p, nil
}

func (f *fakeProperty) Update(ctx context.Context, userID, id string, patch *models.PropertyPatch) error {
	f.gotUserID, f.gotID, f.gotPatch = userID, id, patch
	return f.err
}

func (f *fakeProperty) UpdateMany(ctx context.Context, userID string, ids []string, patch *models.PropertyPatch) (int64, error) {
	f.gotUserID, f.gotIDs, f.gotPatch = userID, ids, patch
	return int64(len(ids)), f.err
}

func (f *fakeProperty) ResetPayments(ctx context.Context, userID string) (int64, error) {
	f.gotUserID = userID
	return 3, f.err
}

func (f *fakeProperty) Delete(ctx context.Context, userID, id string) error {
	f.gotUserID, f.gotID = userID, id
	return f.err
}

type fakeReport struct {
	key, url string
	err      error
}

func (f *fakeReport) UploadURL(ctx context.Context, userID, name string) (string, string, error) {
	return f.key, f.url, f.err
}

func (f *fakeReport) DownloadURL(ctx context.Context, userID, key string) (string, error) {
	return f.url, f.err
}

func newServer(u *fakeUser, p *fakeProperty, r *fakeReport) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", nopLogger(), u, p, r, "k")
}

func asUser(userID string) context.Context {
	return context.WithValue(context.Background(), UserIDKey, userID)
}

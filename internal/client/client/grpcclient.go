package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/storeapi"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const authTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      storeapi.PropertyStoreClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onRotate     func(refreshToken string)

	refreshGroup singleflight.Group
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, public := storeapi.PublicMethods[method]; public {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	access, _ := s.Tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	access, rerr := s.refresh(ctx, access)
	if rerr != nil {
		return rerr
	}
	return invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
}

// refresh rotates the token pair unless another caller already did so after
// stale was issued. Concurrent callers share one RefreshToken round trip.
func (s *GRPCClient) refresh(ctx context.Context, stale string) (string, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		access, refresh := s.Tokens()
		if access != stale && access != "" {
			return access, nil
		}
		if refresh == "" {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}

		resp, err := s.client.RefreshToken(ctx, &storeapi.RefreshTokenRequest{RefreshToken: refresh})
		if err != nil {
			return nil, err
		}
		s.setTokens(resp.AccessToken, resp.RefreshToken)
		return resp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient dials the store. A connection from an earlier call is closed.
func (s *GRPCClient) InitGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = conn
	s.client = storeapi.NewPropertyStoreClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// OnRefreshTokenRotated registers fn to be called with every new refresh token.
func (s *GRPCClient) OnRefreshTokenRotated(fn func(refreshToken string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRotate = fn
}

// Tokens returns the current access and refresh tokens.
func (s *GRPCClient) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = access, refresh
	fn := s.onRotate
	s.mu.Unlock()

	if fn != nil {
		fn(refresh)
	}
}

func (s *GRPCClient) clearTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = "", ""
}

func (s *GRPCClient) HasSession() bool {
	_, refresh := s.Tokens()
	return refresh != ""
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, verifier []byte) error {
	_, err := s.client.RegisterUser(ctx, &storeapi.RegisterUserRequest{Username: userName, Salt: salt, Verifier: verifier})
	return mapError(err)
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &storeapi.GetSaltRequest{Username: userName})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, verifier []byte) error {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	resp, err := s.client.Login(ctx, &storeapi.LoginRequest{Username: userName, VerifierCandidate: verifier})
	if err != nil {
		return mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Resume exchanges a stored refresh token for a fresh token pair.
func (s *GRPCClient) Resume(ctx context.Context, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	resp, err := s.client.RefreshToken(ctx, &storeapi.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout revokes the server-side refresh tokens and forgets local ones.
// Local tokens are dropped even when the store cannot be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	defer s.clearTokens()
	if !s.HasSession() {
		return nil
	}
	_, err := s.client.Logout(ctx, &storeapi.Empty{})
	return mapError(err)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &storeapi.Empty{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// CurrentUser returns the id and username of the session owner.
func (s *GRPCClient) CurrentUser(ctx context.Context) (string, string, error) {
	if !s.HasSession() {
		return "", "", ErrNoSession
	}
	resp, err := s.client.GetCurrentUser(ctx, &storeapi.Empty{})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.UserID, resp.Username, nil
}

func (s *GRPCClient) ListProperties(ctx context.Context, userID string) ([]*storeapi.PropertyRecord, error) {
	resp, err := s.client.ListProperties(ctx, &storeapi.ListPropertiesRequest{UserID: userID})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Properties, nil
}

func (s *GRPCClient) InsertProperty(ctx context.Context, userID string, rec *storeapi.PropertyRecord) (*storeapi.PropertyRecord, error) {
	resp, err := s.client.InsertProperty(ctx, &storeapi.InsertPropertyRequest{UserID: userID, Property: rec})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Property, nil
}

func (s *GRPCClient) UpdateProperty(ctx context.Context, id string, patch *storeapi.PropertyPatch) error {
	_, err := s.client.UpdateProperty(ctx, &storeapi.UpdatePropertyRequest{ID: id, Patch: patch})
	return mapError(err)
}

func (s *GRPCClient) UpdateProperties(ctx context.Context, ids []string, patch *storeapi.PropertyPatch) (int64, error) {
	resp, err := s.client.UpdateProperties(ctx, &storeapi.UpdatePropertiesRequest{IDs: ids, Patch: patch})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Updated, nil
}

func (s *GRPCClient) ResetPayments(ctx context.Context, userID string) (int64, error) {
	resp, err := s.client.ResetPayments(ctx, &storeapi.ResetPaymentsRequest{UserID: userID})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Updated, nil
}

func (s *GRPCClient) DeleteProperty(ctx context.Context, id string) error {
	_, err := s.client.DeleteProperty(ctx, &storeapi.DeletePropertyRequest{ID: id})
	return mapError(err)
}

func (s *GRPCClient) GetReportUploadURL(ctx context.Context, name string) (string, string, error) {
	resp, err := s.client.GetReportUploadURL(ctx, &storeapi.ReportUploadURLRequest{Name: name})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (s *GRPCClient) GetReportDownloadURL(ctx context.Context, key string) (string, error) {
	resp, err := s.client.GetReportDownloadURL(ctx, &storeapi.ReportDownloadURLRequest{Key: key})
	if err != nil {
		return "", mapError(err)
	}
	return resp.URL, nil
}

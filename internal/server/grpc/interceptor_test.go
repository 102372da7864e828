package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/server/auth"
	"github.com/dmitrijs2005/rentkeeper/internal/storeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", nopLogger(), &fakeUser{}, &fakeProperty{}, &fakeReport{}, secret)
}

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethodSkipsAuth(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: storeapi.MethodLogin}

	called := false
	h := func(ctx context.Context, req any) (any, error) {
		called = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_Rejections(t *testing.T) {
	secret := "secret"
	expired, err := auth.GenerateToken("u1", []byte(secret), -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		ctx     context.Context
		wantMsg string
	}{
		{"missing token", context.Background(), "missing token"},
		{"garbage token", withToken("not-a-valid-jwt"), common.ErrInvalidToken.Error()},
		{"wrong secret", withToken(mustToken(t, "u1", "other")), common.ErrInvalidToken.Error()},
		{"expired token", withToken(expired), common.ErrTokenExpired.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(secret)
			info := &grpc.UnaryServerInfo{FullMethod: storeapi.MethodListProperties}
			h := func(ctx context.Context, req any) (any, error) {
				t.Fatal("handler must not run")
				return nil, nil
			}

			_, err := s.accessTokenInterceptor(tt.ctx, nil, info, h)
			require.Error(t, err)
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, tt.wantMsg, status.Convert(err).Message())
		})
	}
}

func TestInterceptor_ValidTokenSetsUserID(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret)
	info := &grpc.UnaryServerInfo{FullMethod: storeapi.MethodListProperties}

	var got any
	h := func(ctx context.Context, req any) (any, error) {
		got = ctx.Value(UserIDKey)
		return "ok", nil
	}

	_, err := s.accessTokenInterceptor(withToken(mustToken(t, "user-123", secret)), nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func mustToken(t *testing.T, userID, secret string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(secret), time.Hour)
	require.NoError(t, err)
	return token
}

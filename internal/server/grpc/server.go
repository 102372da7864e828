// Package grpc exposes the property store over gRPC: transport setup,
// authentication, request handlers and wire conversion.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/services"
	"github.com/dmitrijs2005/rentkeeper/internal/storeapi"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	Logout(ctx context.Context, userID string) error
}

type propertySvc interface {
	List(ctx context.Context, userID string) ([]*models.Property, error)
	Create(ctx context.Context, userID string, p *models.Property) (*models.Property, error)
	Update(ctx context.Context, userID, id string, patch *models.PropertyPatch) error
	UpdateMany(ctx context.Context, userID string, ids []string, patch *models.PropertyPatch) (int64, error)
	ResetPayments(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

type reportSvc interface {
	UploadURL(ctx context.Context, userID, name string) (string, string, error)
	DownloadURL(ctx context.Context, userID, key string) (string, error)
}

type GRPCServer struct {
	address    string
	users      userSvc
	properties propertySvc
	reports    reportSvc
	logger     logging.Logger
	jwtSecret  []byte
}

var _ storeapi.PropertyStoreServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us userSvc, ps propertySvc, rs reportSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		users:      us,
		properties: ps,
		reports:    rs,
		jwtSecret:  []byte(secretKey),
	}
}

// NewServer builds the grpc.Server with codec and interceptors installed and
// the store service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(storeapi.Codec{}),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)
	storeapi.RegisterPropertyStoreServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}

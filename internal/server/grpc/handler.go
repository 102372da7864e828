package grpc

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/storeapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *storeapi.Empty) (*storeapi.PingResponse, error) {
	return &storeapi.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *storeapi.RegisterUserRequest) (*storeapi.RegisterUserResponse, error) {
	u, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "username", u.UserName, "user_id", u.ID)
	return &storeapi.RegisterUserResponse{UserID: u.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *storeapi.GetSaltRequest) (*storeapi.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, "get_salt", err)
	}
	return &storeapi.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *storeapi.LoginRequest) (*storeapi.TokenPairResponse, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.VerifierCandidate)
	if err != nil {
		return nil, s.toStatus(ctx, "login", err)
	}
	return &storeapi.TokenPairResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *storeapi.RefreshTokenRequest) (*storeapi.TokenPairResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh_token", err)
	}
	return &storeapi.TokenPairResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) GetCurrentUser(ctx context.Context, _ *storeapi.Empty) (*storeapi.CurrentUserResponse, error) {
	userID, err := s.callerID(ctx, "")
	if err != nil {
		return nil, err
	}
	u, err := s.users.CurrentUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "current_user", err)
	}
	return &storeapi.CurrentUserResponse{UserID: u.ID, Username: u.UserName}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *storeapi.Empty) (*storeapi.Empty, error) {
	userID, err := s.callerID(ctx, "")
	if err != nil {
		return nil, err
	}
	if err := s.users.Logout(ctx, userID); err != nil {
		return nil, s.toStatus(ctx, "logout", err)
	}
	return &storeapi.Empty{}, nil
}

func (s *GRPCServer) ListProperties(ctx context.Context, req *storeapi.ListPropertiesRequest) (*storeapi.ListPropertiesResponse, error) {
	userID, err := s.callerID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	props, err := s.properties.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "list_properties", err)
	}

	resp := &storeapi.ListPropertiesResponse{Properties: make([]*storeapi.PropertyRecord, 0, len(props))}
	for _, p := range props {
		resp.Properties = append(resp.Properties, recordFromModel(p))
	}
	return resp, nil
}

func (s *GRPCServer) InsertProperty(ctx context.Context, req *storeapi.InsertPropertyRequest) (*storeapi.InsertPropertyResponse, error) {
	userID, err := s.callerID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	p, err := modelFromRecord(req.Property)
	if err != nil {
		return nil, s.toStatus(ctx, "insert_property", err)
	}

	created, err := s.properties.Create(ctx, userID, p)
	if err != nil {
		return nil, s.toStatus(ctx, "insert_property", err)
	}
	return &storeapi.InsertPropertyResponse{Property: recordFromModel(created)}, nil
}

func (s *GRPCServer) UpdateProperty(ctx context.Context, req *storeapi.UpdatePropertyRequest) (*storeapi.Empty, error) {
	userID, err := s.callerID(ctx, "")
	if err != nil {
		return nil, err
	}

	patch, err := patchFromWire(req.Patch)
	if err != nil {
		return nil, s.toStatus(ctx, "update_property", err)
	}
	if err := s.properties.Update(ctx, userID, req.ID, patch); err != nil {
		return nil, s.toStatus(ctx, "update_property", err)
	}
	return &storeapi.Empty{}, nil
}

func (s *GRPCServer) UpdateProperties(ctx context.Context, req *storeapi.UpdatePropertiesRequest) (*storeapi.UpdatePropertiesResponse, error) {
	userID, err := s.callerID(ctx, "")
	if err != nil {
		return nil, err
	}

	patch, err := patchFromWire(req.Patch)
	if err != nil {
		return nil, s.toStatus(ctx, "update_properties", err)
	}
	n, err := s.properties.UpdateMany(ctx, userID, req.IDs, patch)
	if err != nil {
		return nil, s.toStatus(ctx, "update_properties", err)
	}
	return &storeapi.UpdatePropertiesResponse{Updated: n}, nil
}

func (s *GRPCServer) ResetPayments(ctx context.Context, req *storeapi.ResetPaymentsRequest) (*storeapi.UpdatePropertiesResponse, error) {
	userID, err := s.callerID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	n, err := s.properties.ResetPayments(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "reset_payments", err)
	}
	s.logger.Info(ctx, "Payments reset", "user_id", userID, "updated", n)
	return &storeapi.UpdatePropertiesResponse{Updated: n}, nil
}

func (s *GRPCServer) DeleteProperty(ctx context.Context, req *storeapi.DeletePropertyRequest) (*storeapi.Empty, error) {
	userID, err := s.callerID(ctx, "")
	if err != nil {
		return nil, err
	}
	if err := s.properties.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, "delete_property", err)
	}
	return &storeapi.Empty{}, nil
}

func (s *GRPCServer) GetReportUploadURL(ctx context.Context, req *storeapi.ReportUploadURLRequest) (*storeapi.ReportURLResponse, error) {
	userID, err := s.callerID(ctx, "")
	if err != nil {
		return nil, err
	}
	key, url, err := s.reports.UploadURL(ctx, userID, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, "report_upload_url", err)
	}
	return &storeapi.ReportURLResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) GetReportDownloadURL(ctx context.Context, req *storeapi.ReportDownloadURLRequest) (*storeapi.ReportURLResponse, error) {
	userID, err := s.callerID(ctx, "")
	if err != nil {
		return nil, err
	}
	url, err := s.reports.DownloadURL(ctx, userID, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, "report_download_url", err)
	}
	return &storeapi.ReportURLResponse{Key: req.Key, URL: url}, nil
}

// callerID returns the authenticated user. A user id named in the request
// must match it; an empty one means "the caller".
func (s *GRPCServer) callerID(ctx context.Context, requested string) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing user")
	}
	if requested != "" && requested != userID {
		return "", status.Error(codes.PermissionDenied, "forbidden")
	}
	return userID, nil
}

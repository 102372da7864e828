package storeapi

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "rentkeeper.store.PropertyStore"

// Full method names, as seen by interceptors.
const (
	MethodPing                 = "/" + ServiceName + "/Ping"
	MethodRegisterUser         = "/" + ServiceName + "/RegisterUser"
	MethodGetSalt              = "/" + ServiceName + "/GetSalt"
	MethodLogin                = "/" + ServiceName + "/Login"
	MethodRefreshToken         = "/" + ServiceName + "/RefreshToken"
	MethodGetCurrentUser       = "/" + ServiceName + "/GetCurrentUser"
	MethodLogout               = "/" + ServiceName + "/Logout"
	MethodListProperties       = "/" + ServiceName + "/ListProperties"
	MethodInsertProperty       = "/" + ServiceName + "/InsertProperty"
	MethodUpdateProperty       = "/" + ServiceName + "/UpdateProperty"
	MethodUpdateProperties     = "/" + ServiceName + "/UpdateProperties"
	MethodResetPayments        = "/" + ServiceName + "/ResetPayments"
	MethodDeleteProperty       = "/" + ServiceName + "/DeleteProperty"
	MethodGetReportUploadURL   = "/" + ServiceName + "/GetReportUploadURL"
	MethodGetReportDownloadURL = "/" + ServiceName + "/GetReportDownloadURL"
)

// PublicMethods do not require an access token.
var PublicMethods = map[string]struct{}{
	MethodPing:         {},
	MethodRegisterUser: {},
	MethodGetSalt:      {},
	MethodLogin:        {},
	MethodRefreshToken: {},
}

// PropertyStoreServer is implemented by the store's gRPC handlers.
type PropertyStoreServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*TokenPairResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenPairResponse, error)
	GetCurrentUser(context.Context, *Empty) (*CurrentUserResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	ListProperties(context.Context, *ListPropertiesRequest) (*ListPropertiesResponse, error)
	InsertProperty(context.Context, *InsertPropertyRequest) (*InsertPropertyResponse, error)
	UpdateProperty(context.Context, *UpdatePropertyRequest) (*Empty, error)
	UpdateProperties(context.Context, *UpdatePropertiesRequest) (*UpdatePropertiesResponse, error)
	ResetPayments(context.Context, *ResetPaymentsRequest) (*UpdatePropertiesResponse, error)
	DeleteProperty(context.Context, *DeletePropertyRequest) (*Empty, error)
	GetReportUploadURL(context.Context, *ReportUploadURLRequest) (*ReportURLResponse, error)
	GetReportDownloadURL(context.Context, *ReportDownloadURLRequest) (*ReportURLResponse, error)
}

func unary[Req, Resp any](fullMethod string, call func(PropertyStoreServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(PropertyStoreServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes PropertyStore for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PropertyStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, PropertyStoreServer.Ping)},
		{MethodName: "RegisterUser", Handler: unary(MethodRegisterUser, PropertyStoreServer.RegisterUser)},
		{MethodName: "GetSalt", Handler: unary(MethodGetSalt, PropertyStoreServer.GetSalt)},
		{MethodName: "Login", Handler: unary(MethodLogin, PropertyStoreServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, PropertyStoreServer.RefreshToken)},
		{MethodName: "GetCurrentUser", Handler: unary(MethodGetCurrentUser, PropertyStoreServer.GetCurrentUser)},
		{MethodName: "Logout", Handler: unary(MethodLogout, PropertyStoreServer.Logout)},
		{MethodName: "ListProperties", Handler: unary(MethodListProperties, PropertyStoreServer.ListProperties)},
		{MethodName: "InsertProperty", Handler: unary(MethodInsertProperty, PropertyStoreServer.InsertProperty)},
		{MethodName: "UpdateProperty", Handler: unary(MethodUpdateProperty, PropertyStoreServer.UpdateProperty)},
		{MethodName: "UpdateProperties", Handler: unary(MethodUpdateProperties, PropertyStoreServer.UpdateProperties)},
		{MethodName: "ResetPayments", Handler: unary(MethodResetPayments, PropertyStoreServer.ResetPayments)},
		{MethodName: "DeleteProperty", Handler: unary(MethodDeleteProperty, PropertyStoreServer.DeleteProperty)},
		{MethodName: "GetReportUploadURL", Handler: unary(MethodGetReportUploadURL, PropertyStoreServer.GetReportUploadURL)},
		{MethodName: "GetReportDownloadURL", Handler: unary(MethodGetReportDownloadURL, PropertyStoreServer.GetReportDownloadURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storeapi",
}

func RegisterPropertyStoreServer(s grpc.ServiceRegistrar, srv PropertyStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// PropertyStoreClient is the client side of PropertyStore.
type PropertyStoreClient interface {
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPairResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenPairResponse, error)
	GetCurrentUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CurrentUserResponse, error)
	Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	ListProperties(ctx context.Context, in *ListPropertiesRequest, opts ...grpc.CallOption) (*ListPropertiesResponse, error)
	InsertProperty(ctx context.Context, in *InsertPropertyRequest, opts ...grpc.CallOption) (*InsertPropertyResponse, error)
	UpdateProperty(ctx context.Context, in *UpdatePropertyRequest, opts ...grpc.CallOption) (*Empty, error)
	UpdateProperties(ctx context.Context, in *UpdatePropertiesRequest, opts ...grpc.CallOption) (*UpdatePropertiesResponse, error)
	ResetPayments(ctx context.Context, in *ResetPaymentsRequest, opts ...grpc.CallOption) (*UpdatePropertiesResponse, error)
	DeleteProperty(ctx context.Context, in *DeletePropertyRequest, opts ...grpc.CallOption) (*Empty, error)
	GetReportUploadURL(ctx context.Context, in *ReportUploadURLRequest, opts ...grpc.CallOption) (*ReportURLResponse, error)
	GetReportDownloadURL(ctx context.Context, in *ReportDownloadURLRequest, opts ...grpc.CallOption) (*ReportURLResponse, error)
}

type propertyStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewPropertyStoreClient(cc grpc.ClientConnInterface) PropertyStoreClient {
	return &propertyStoreClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *propertyStoreClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *propertyStoreClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, MethodRegisterUser, in, opts)
}

func (c *propertyStoreClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *propertyStoreClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPairResponse, error) {
	return invoke[TokenPairResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *propertyStoreClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenPairResponse, error) {
	return invoke[TokenPairResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *propertyStoreClient) GetCurrentUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CurrentUserResponse, error) {
	return invoke[CurrentUserResponse](ctx, c.cc, MethodGetCurrentUser, in, opts)
}

func (c *propertyStoreClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *propertyStoreClient) ListProperties(ctx context.Context, in *ListPropertiesRequest, opts ...grpc.CallOption) (*ListPropertiesResponse, error) {
	return invoke[ListPropertiesResponse](ctx, c.cc, MethodListProperties, in, opts)
}

func (c *propertyStoreClient) InsertProperty(ctx context.Context, in *InsertPropertyRequest, opts ...grpc.CallOption) (*InsertPropertyResponse, error) {
	return invoke[InsertPropertyResponse](ctx, c.cc, MethodInsertProperty, in, opts)
}

func (c *propertyStoreClient) UpdateProperty(ctx context.Context, in *UpdatePropertyRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodUpdateProperty, in, opts)
}

func (c *propertyStoreClient) UpdateProperties(ctx context.Context, in *UpdatePropertiesRequest, opts ...grpc.CallOption) (*UpdatePropertiesResponse, error) {
	return invoke[UpdatePropertiesResponse](ctx, c.cc, MethodUpdateProperties, in, opts)
}

func (c *propertyStoreClient) ResetPayments(ctx context.Context, in *ResetPaymentsRequest, opts ...grpc.CallOption) (*UpdatePropertiesResponse, error) {
	return invoke[UpdatePropertiesResponse](ctx, c.cc, MethodResetPayments, in, opts)
}

func (c *propertyStoreClient) DeleteProperty(ctx context.Context, in *DeletePropertyRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteProperty, in, opts)
}

func (c *propertyStoreClient) GetReportUploadURL(ctx context.Context, in *ReportUploadURLRequest, opts ...grpc.CallOption) (*ReportURLResponse, error) {
	return invoke[ReportURLResponse](ctx, c.cc, MethodGetReportUploadURL, in, opts)
}

func (c *propertyStoreClient) GetReportDownloadURL(ctx context.Context, in *ReportDownloadURLRequest, opts ...grpc.CallOption) (*ReportURLResponse, error) {
	return invoke[ReportURLResponse](ctx, c.cc, MethodGetReportDownloadURL, in, opts)
}

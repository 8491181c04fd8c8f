package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/republica/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService.
const AuthServiceName = "republica.v1.AuthService"

// Procedure paths of the AuthService.
const (
	AuthServiceLoginProcedure            = "/republica.v1.AuthService/Login"
	AuthServiceGetCurrentMemberProcedure = "/republica.v1.AuthService/GetCurrentMember"
)

// AuthServiceHandler is implemented by the server side of the AuthService.
// Login is public; GetCurrentMember requires a bearer token.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentMember(context.Context, *connect.Request[api.GetCurrentMemberRequest]) (*connect.Response[api.GetCurrentMemberResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for every AuthService procedure.
// It returns the path prefix to mount the handler on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentMemberProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentMemberProcedure, svc.GetCurrentMember, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentMember(context.Context, *connect.Request[api.GetCurrentMemberRequest]) (*connect.Response[api.GetCurrentMemberResponse], error)
}

// NewAuthServiceClient constructs a client for the AuthService at baseURL
// (e.g. http://localhost:8080). Requests are JSON encoded.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &authServiceClient{
		login:            connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentMember: connect.NewClient[api.GetCurrentMemberRequest, api.GetCurrentMemberResponse](httpClient, baseURL+AuthServiceGetCurrentMemberProcedure, opts...),
	}
}

type authServiceClient struct {
	login            *connect.Client[api.LoginRequest, api.LoginResponse]
	getCurrentMember *connect.Client[api.GetCurrentMemberRequest, api.GetCurrentMemberResponse]
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentMember(ctx context.Context, req *connect.Request[api.GetCurrentMemberRequest]) (*connect.Response[api.GetCurrentMemberResponse], error) {
	return c.getCurrentMember.CallUnary(ctx, req)
}

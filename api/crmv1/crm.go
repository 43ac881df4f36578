package crmv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CrmServiceName is the registered gRPC service name, used for
// health-check registration.
const CrmServiceName = "crm.v1.Crm"

const (
	Crm_Welcome_FullMethodName = "/crm.v1.Crm/Welcome"
	Crm_Recall_FullMethodName  = "/crm.v1.Crm/Recall"
	Crm_Remind_FullMethodName  = "/crm.v1.Crm/Remind"
)

// CrmClient is the client API for the Crm service.
type CrmClient interface {
	// Welcome runs the welcome campaign for recently registered users.
	Welcome(ctx context.Context, in *WelcomeRequest, opts ...grpc.CallOption) (*WelcomeResponse, error)
	// Recall is declared but not implemented.
	Recall(ctx context.Context, in *RecallRequest, opts ...grpc.CallOption) (*RecallResponse, error)
	// Remind is declared but not implemented.
	Remind(ctx context.Context, in *RemindRequest, opts ...grpc.CallOption) (*RemindResponse, error)
}

type crmClient struct {
	cc grpc.ClientConnInterface
}

// NewCrmClient creates a Crm client over an established connection.
func NewCrmClient(cc grpc.ClientConnInterface) CrmClient {
	return &crmClient{cc}
}

func (c *crmClient) Welcome(ctx context.Context, in *WelcomeRequest, opts ...grpc.CallOption) (*WelcomeResponse, error) {
	out := new(WelcomeResponse)
	if err := c.cc.Invoke(ctx, Crm_Welcome_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crmClient) Recall(ctx context.Context, in *RecallRequest, opts ...grpc.CallOption) (*RecallResponse, error) {
	out := new(RecallResponse)
	if err := c.cc.Invoke(ctx, Crm_Recall_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crmClient) Remind(ctx context.Context, in *RemindRequest, opts ...grpc.CallOption) (*RemindResponse, error) {
	out := new(RemindResponse)
	if err := c.cc.Invoke(ctx, Crm_Remind_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CrmServer is the server API for the Crm service.
type CrmServer interface {
	Welcome(context.Context, *WelcomeRequest) (*WelcomeResponse, error)
	Recall(context.Context, *RecallRequest) (*RecallResponse, error)
	Remind(context.Context, *RemindRequest) (*RemindResponse, error)
}

// UnimplementedCrmServer can be embedded for forward-compatible
// implementations.
type UnimplementedCrmServer struct{}

func (UnimplementedCrmServer) Welcome(context.Context, *WelcomeRequest) (*WelcomeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Welcome not implemented")
}

func (UnimplementedCrmServer) Recall(context.Context, *RecallRequest) (*RecallResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Recall not implemented")
}

func (UnimplementedCrmServer) Remind(context.Context, *RemindRequest) (*RemindResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Remind not implemented")
}

// RegisterCrmServer registers the Crm service implementation.
func RegisterCrmServer(s grpc.ServiceRegistrar, srv CrmServer) {
	s.RegisterService(&Crm_ServiceDesc, srv)
}

func _Crm_Welcome_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(WelcomeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CrmServer).Welcome(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Crm_Welcome_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CrmServer).Welcome(ctx, req.(*WelcomeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Crm_Recall_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RecallRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CrmServer).Recall(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Crm_Recall_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CrmServer).Recall(ctx, req.(*RecallRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Crm_Remind_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RemindRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CrmServer).Remind(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Crm_Remind_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CrmServer).Remind(ctx, req.(*RemindRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Crm_ServiceDesc is the grpc.ServiceDesc for the Crm service.
var Crm_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CrmServiceName,
	HandlerType: (*CrmServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Welcome",
			Handler:    _Crm_Welcome_Handler,
		},
		{
			MethodName: "Recall",
			Handler:    _Crm_Recall_Handler,
		},
		{
			MethodName: "Remind",
			Handler:    _Crm_Remind_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/crmv1/crm.go",
}

package crmv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UserStatsServiceName is the registered gRPC service name, used for
// health-check registration.
const UserStatsServiceName = "crm.v1.UserStats"

const (
	UserStats_Query_FullMethodName    = "/crm.v1.UserStats/Query"
	UserStats_RawQuery_FullMethodName = "/crm.v1.UserStats/RawQuery"
)

// UserStatsClient is the client API for the UserStats service.
type UserStatsClient interface {
	// Query streams behavior-table rows matching a structured predicate set.
	Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[User], error)
	// RawQuery streams rows matching a free-text filter. Diagnostic only.
	RawQuery(ctx context.Context, in *RawQueryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[User], error)
}

type userStatsClient struct {
	cc grpc.ClientConnInterface
}

// NewUserStatsClient creates a UserStats client over an established
// connection.
func NewUserStatsClient(cc grpc.ClientConnInterface) UserStatsClient {
	return &userStatsClient{cc}
}

func (c *userStatsClient) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[User], error) {
	stream, err := c.cc.NewStream(ctx, &UserStats_ServiceDesc.Streams[0], UserStats_Query_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[QueryRequest, User]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *userStatsClient) RawQuery(ctx context.Context, in *RawQueryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[User], error) {
	stream, err := c.cc.NewStream(ctx, &UserStats_ServiceDesc.Streams[1], UserStats_RawQuery_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[RawQueryRequest, User]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// UserStatsServer is the server API for the UserStats service.
type UserStatsServer interface {
	Query(*QueryRequest, grpc.ServerStreamingServer[User]) error
	RawQuery(*RawQueryRequest, grpc.ServerStreamingServer[User]) error
}

// UnimplementedUserStatsServer can be embedded for forward-compatible
// implementations.
type UnimplementedUserStatsServer struct{}

func (UnimplementedUserStatsServer) Query(*QueryRequest, grpc.ServerStreamingServer[User]) error {
	return status.Error(codes.Unimplemented, "method Query not implemented")
}

func (UnimplementedUserStatsServer) RawQuery(*RawQueryRequest, grpc.ServerStreamingServer[User]) error {
	return status.Error(codes.Unimplemented, "method RawQuery not implemented")
}

// RegisterUserStatsServer registers the UserStats service implementation.
func RegisterUserStatsServer(s grpc.ServiceRegistrar, srv UserStatsServer) {
	s.RegisterService(&UserStats_ServiceDesc, srv)
}

func _UserStats_Query_Handler(srv any, stream grpc.ServerStream) error {
	in := new(QueryRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(UserStatsServer).Query(in, &grpc.GenericServerStream[QueryRequest, User]{ServerStream: stream})
}

func _UserStats_RawQuery_Handler(srv any, stream grpc.ServerStream) error {
	in := new(RawQueryRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(UserStatsServer).RawQuery(in, &grpc.GenericServerStream[RawQueryRequest, User]{ServerStream: stream})
}

// UserStats_ServiceDesc is the grpc.ServiceDesc for the UserStats service.
var UserStats_ServiceDesc = grpc.ServiceDesc{
	ServiceName: UserStatsServiceName,
	HandlerType: (*UserStatsServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Query",
			Handler:       _UserStats_Query_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "RawQuery",
			Handler:       _UserStats_RawQuery_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "api/crmv1/userstats.go",
}

package crmv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NotificationServiceName is the registered gRPC service name, used for
// health-check registration.
const NotificationServiceName = "crm.v1.Notification"

const (
	Notification_Send_FullMethodName = "/crm.v1.Notification/Send"
)

// NotificationClient is the client API for the Notification service.
type NotificationClient interface {
	// Send streams notification requests in and acknowledgements out.
	Send(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[SendRequest, SendResponse], error)
}

type notificationClient struct {
	cc grpc.ClientConnInterface
}

// NewNotificationClient creates a Notification client over an established
// connection.
func NewNotificationClient(cc grpc.ClientConnInterface) NotificationClient {
	return &notificationClient{cc}
}

func (c *notificationClient) Send(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[SendRequest, SendResponse], error) {
	stream, err := c.cc.NewStream(ctx, &Notification_ServiceDesc.Streams[0], Notification_Send_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[SendRequest, SendResponse]{ClientStream: stream}, nil
}

// NotificationServer is the server API for the Notification service.
type NotificationServer interface {
	Send(grpc.BidiStreamingServer[SendRequest, SendResponse]) error
}

// UnimplementedNotificationServer can be embedded for forward-compatible
// implementations.
type UnimplementedNotificationServer struct{}

func (UnimplementedNotificationServer) Send(grpc.BidiStreamingServer[SendRequest, SendResponse]) error {
	return status.Error(codes.Unimplemented, "method Send not implemented")
}

// RegisterNotificationServer registers the Notification service
// implementation.
func RegisterNotificationServer(s grpc.ServiceRegistrar, srv NotificationServer) {
	s.RegisterService(&Notification_ServiceDesc, srv)
}

func _Notification_Send_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(NotificationServer).Send(&grpc.GenericServerStream[SendRequest, SendResponse]{ServerStream: stream})
}

// Notification_ServiceDesc is the grpc.ServiceDesc for the Notification
// service.
var Notification_ServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationServiceName,
	HandlerType: (*NotificationServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Send",
			Handler:       _Notification_Send_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "api/crmv1/notification.go",
}

package crmv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MetadataServiceName is the registered gRPC service name, used for
// health-check registration.
const MetadataServiceName = "crm.v1.Metadata"

const (
	Metadata_Materialize_FullMethodName = "/crm.v1.Metadata/Materialize"
)

// MetadataClient is the client API for the Metadata service.
type MetadataClient interface {
	// Materialize synthesizes one content record per requested id.
	Materialize(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[MaterializeRequest, Content], error)
}

type metadataClient struct {
	cc grpc.ClientConnInterface
}

// NewMetadataClient creates a Metadata client over an established
// connection.
func NewMetadataClient(cc grpc.ClientConnInterface) MetadataClient {
	return &metadataClient{cc}
}

func (c *metadataClient) Materialize(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[MaterializeRequest, Content], error) {
	stream, err := c.cc.NewStream(ctx, &Metadata_ServiceDesc.Streams[0], Metadata_Materialize_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[MaterializeRequest, Content]{ClientStream: stream}, nil
}

// MetadataServer is the server API for the Metadata service.
type MetadataServer interface {
	Materialize(grpc.BidiStreamingServer[MaterializeRequest, Content]) error
}

// UnimplementedMetadataServer can be embedded for forward-compatible
// implementations.
type UnimplementedMetadataServer struct{}

func (UnimplementedMetadataServer) Materialize(grpc.BidiStreamingServer[MaterializeRequest, Content]) error {
	return status.Error(codes.Unimplemented, "method Materialize not implemented")
}

// RegisterMetadataServer registers the Metadata service implementation.
func RegisterMetadataServer(s grpc.ServiceRegistrar, srv MetadataServer) {
	s.RegisterService(&Metadata_ServiceDesc, srv)
}

func _Metadata_Materialize_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(MetadataServer).Materialize(&grpc.GenericServerStream[MaterializeRequest, Content]{ServerStream: stream})
}

// Metadata_ServiceDesc is the grpc.ServiceDesc for the Metadata service.
var Metadata_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MetadataServiceName,
	HandlerType: (*MetadataServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Materialize",
			Handler:       _Metadata_Materialize_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "api/crmv1/metadata.go",
}

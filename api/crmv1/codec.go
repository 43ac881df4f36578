// Package crmv1 defines the wire surface shared by the CRM services.
//
// The package is maintained by hand: message types are plain structs
// serialized through a JSON gRPC codec, and the service descriptors mirror
// the shape protoc-gen-go-grpc would emit. Servers pick the codec up from
// the registered content subtype; clients must dial with
// grpc.CallContentSubtype(CodecName) (see DefaultCallOptions).
package crmv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype negotiated for all CRM RPCs.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }

// DefaultCallOptions returns the call options every CRM client connection
// needs so that requests negotiate the JSON codec.
func DefaultCallOptions() []grpc.CallOption {
	return []grpc.CallOption{grpc.CallContentSubtype(CodecName)}
}

// Package rpc exposes internal/frontend.Frontend over gRPC (spec.md
// §9.5 "uuid request correlation" / §5 concurrency model), the
// external interface an editor plugin or CI runner talks to instead of
// linking this module directly.
//
// There is no .proto-generated service in this tree: spec.md names
// gRPC as the transport, not a fixed wire schema, and fabricating
// protoc-generated stubs by hand would not be real generated code.
// Instead this package hand-registers a JSON encoding.Codec under the
// name "proto" — grpc-go's default content-subtype, so an ordinary
// grpc.NewServer()/grpc.Dial() pair (no WithDefaultCallOptions
// gymnastics on either side) transparently exchanges JSON request/
// response structs instead of protobuf wire bytes, while everything
// else about the transport (HTTP/2 framing, streaming, deadlines,
// interceptors) stays exactly what google.golang.org/grpc provides.
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// jsonCodec implements encoding.Codec by delegating to encoding/json.
// Registering it under Name "proto" (encoding.RegisterCodec, called
// once from this package's init below) overrides grpc-go's built-in
// protobuf codec process-wide, since "" content-subtype — what every
// call uses unless it opts into a different one — resolves to the
// codec registered under "proto".
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpc: decoding JSON request: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return "proto" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

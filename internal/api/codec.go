// Package api defines the daybook gRPC contract: request/response messages,
// a JSON codec for them, the service descriptor and a typed client.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype negotiated by client and server.
const CodecName = "json"

// Codec marshals messages as JSON on the wire.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}

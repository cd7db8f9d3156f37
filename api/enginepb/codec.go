package enginepb

import "fmt"

// Message is what every wire type in this package implements.
type Message interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary([]byte) error
}

// Codec plugs the hand-maintained messages into grpc-go. It registers
// under the standard "proto" name so clients generated from
// engine.proto with protoc interoperate unchanged.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("enginepb: cannot marshal %T", v)
	}
	return m.MarshalBinary()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("enginepb: cannot unmarshal into %T", v)
	}
	return m.UnmarshalBinary(data)
}

func (Codec) Name() string { return "proto" }

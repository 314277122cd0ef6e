package avro

import (
	"encoding/json"
	"fmt"

	"github.com/linkedin/goavro/v2"
)

// Encoder wraps a goavro codec. goavro codecs are safe for concurrent use.
type Encoder struct {
	codec *goavro.Codec
}

// NewEncoder creates a new encoder from an Avro schema string
func NewEncoder(schema string) (*Encoder, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}
	return &Encoder{codec: codec}, nil
}

// EncodeJSON converts a JSON object to Avro binary format
func (e *Encoder) EncodeJSON(jsonData []byte) ([]byte, error) {
	var native interface{}
	if err := json.Unmarshal(jsonData, &native); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json: %w", err)
	}
	if _, ok := native.(map[string]interface{}); !ok {
		return nil, fmt.Errorf("json data must be an object/record to match avro schema")
	}
	return e.EncodeNative(native)
}

// EncodeNative converts a Go native map to Avro binary format
func (e *Encoder) EncodeNative(native interface{}) ([]byte, error) {
	binary, err := e.codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("failed to encode to avro binary: %w", err)
	}
	return binary, nil
}

func (e *Encoder) DecodeNative(binary []byte) (interface{}, error) {
	native, rest, err := e.codec.NativeFromBinary(binary)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avro binary: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("failed to decode avro binary: %d trailing bytes", len(rest))
	}
	return native, nil
}

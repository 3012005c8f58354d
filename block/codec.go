package block

import (
	"encoding/json"
	"fmt"

	"raicore/jsonx"
)

// envelope tags a serialized block with its variant so the persistent store
// can reconstruct the right type
type envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"block"`
}

// Marshal encodes a block together with its variant tag
func Marshal(b Block) ([]byte, error) {
	data, err := jsonx.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s block: %w", b.Kind(), err)
	}
	return jsonx.Marshal(envelope{Kind: b.Kind().String(), Data: data})
}

// Unmarshal decodes a block serialized by Marshal
func Unmarshal(data []byte) (Block, error) {
	var env envelope
	if err := jsonx.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block envelope: %w", err)
	}

	var b Block
	switch env.Kind {
	case KindOpen.String():
		b = &Open{}
	case KindSend.String():
		b = &Send{}
	case KindReceive.String():
		b = &Receive{}
	case KindChange.String():
		b = &Change{}
	default:
		return nil, fmt.Errorf("unknown block kind %q", env.Kind)
	}
	if err := jsonx.Unmarshal(env.Data, b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s block: %w", env.Kind, err)
	}
	return b, nil
}

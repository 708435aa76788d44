package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process publishers hand over
// T or *T directly; raw JSON and generic maps (dead-letter lines, replays)
// are decoded.
func DecodePayload[T any](input any) (T, error) {
	var out T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("decode %T: nil payload", out)
		}
		return *v, nil
	case json.RawMessage:
		return out, wrapDecode(out, json.Unmarshal(v, &out))
	case []byte:
		return out, wrapDecode(out, json.Unmarshal(v, &out))
	case nil:
		return out, fmt.Errorf("decode %T: nil payload", out)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return out, wrapDecode(out, err)
	}
	return out, wrapDecode(out, json.Unmarshal(data, &out))
}

func wrapDecode(target any, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("decode %T: %w", target, err)
}

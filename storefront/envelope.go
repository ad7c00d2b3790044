package storefront

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the wire shape every successful API response uses. Meta keys
// are kept raw so that callers can project fields by presence rather than by
// zero value.
type envelope struct {
	Data json.RawMessage            `json:"data"`
	Meta map[string]json.RawMessage `json:"meta"`
}

var jsonNull = []byte("null")

// dataPresent reports whether the envelope carries a non-empty data value.
// Empty objects and arrays count as absent: the API sends them as padding on
// meta-only responses.
func dataPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, jsonNull):
		return false
	case bytes.Equal(trimmed, []byte("{}")), bytes.Equal(trimmed, []byte("[]")):
		return false
	}
	return true
}

func (e envelope) metaString(key string) (*string, bool, error) {
	raw, ok := e.Meta[key]
	if !ok {
		return nil, false, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false, fmt.Errorf("%w: meta field %q: %v", ErrRemote, key, err)
	}
	return &value, true, nil
}

func (e envelope) metaStrings(key string) ([]string, bool, error) {
	raw, ok := e.Meta[key]
	if !ok {
		return nil, false, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false, fmt.Errorf("%w: meta field %q: %v", ErrRemote, key, err)
	}
	return values, true, nil
}

func (e envelope) metaInt(key string) (int, bool) {
	raw, ok := e.Meta[key]
	if !ok {
		return 0, false
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	return value, true
}

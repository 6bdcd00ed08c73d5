package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// HashRequest is the body sent to the backend that signs an order.
type HashRequest struct {
	Amount string `json:"amount"`
}

// HashResponse is the backend reply. Hash is empty when the backend
// answered without one.
type HashResponse struct {
	Hash string `json:"hash"`
}

// UnmarshalJSON accepts the hash as a string or a number. null, false and a
// zero number mean no hash; objects, arrays and true are rejected.
func (r *HashResponse) UnmarshalJSON(b []byte) error {
	var raw struct {
		Hash json.RawMessage `json:"hash"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	hash, err := hashValue(raw.Hash)
	if err != nil {
		return err
	}
	r.Hash = hash
	return nil
}

func hashValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case 'n', 'f':
		if string(raw) == "null" || string(raw) == "false" {
			return "", nil
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		if f, err := n.Float64(); err == nil && f == 0 {
			return "", nil
		}
		return n.String(), nil
	}
	return "", fmt.Errorf("unsupported hash value %s", raw)
}

// HashProvider obtains the gateway integrity hash for an order amount.
type HashProvider interface {
	FetchHash(ctx context.Context, req HashRequest) (*HashResponse, error)
}

var ErrMalformedResponse = errors.New("malformed hash response")

// StatusError is returned when the backend replies with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hash backend: status %d: %s", e.StatusCode, e.Body)
}

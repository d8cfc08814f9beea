package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonCodec carries plain Go structs as JSON. It is registered under the
// "json" name so handlers accept application/json bodies from any HTTP client.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

// Marshal leaves "->" in settlement text unescaped.
func (jsonCodec) Marshal(msg any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

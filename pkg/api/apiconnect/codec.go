// Package apiconnect wires the api messages into Connect handlers and clients.
package apiconnect

import (
	"encoding/json"
	"fmt"
)

// Codec serializes api messages as JSON under the "json" codec name, so both
// application/json and application/connect+json requests are accepted.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

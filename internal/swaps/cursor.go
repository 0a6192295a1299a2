package swaps

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Cursor points into (block height, transaction order) space. Clients treat it as opaque.
type Cursor struct {
	Height *uint64 `json:"height,omitempty"`
	Order  *int    `json:"order,omitempty"`
}

// NewCursor returns a cursor at order within the block at height.
func NewCursor(height uint64, order int) *Cursor {
	return &Cursor{Height: &height, Order: &order}
}

// Encode renders the cursor as base64url JSON.
func (c Cursor) Encode() string {
	raw := make([]byte, 0, 40)
	raw = append(raw, '{')
	if c.Height != nil {
		raw = append(raw, `"height":`...)
		raw = strconv.AppendUint(raw, *c.Height, 10)
	}
	if c.Order != nil {
		if c.Height != nil {
			raw = append(raw, ',')
		}
		raw = append(raw, `"order":`...)
		raw = strconv.AppendInt(raw, int64(*c.Order), 10)
	}
	raw = append(raw, '}')

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an encoded cursor. An empty string yields the zero cursor, which
// starts at the configured default position.
func DecodeCursor(s string) (Cursor, error) {
	var c Cursor
	if s == "" {
		return c, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return c, fmt.Errorf("invalid cursor encoding: %w", err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("invalid cursor: %w", err)
	}
	if c.Order != nil && *c.Order < 0 {
		return c, fmt.Errorf("invalid cursor: negative order %d", *c.Order)
	}
	return c, nil
}

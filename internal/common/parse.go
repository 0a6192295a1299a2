package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseHeight coerces a block height rendered as a JSON number into a native integer.
// Nodes and stores may hand heights back as wide or decimal literals ("1234", "1234.0",
// "1.234e3"); anything with a fractional part or a negative sign is rejected.
func ParseHeight(n json.Number) (uint64, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, fmt.Errorf("empty height")
	}

	if h, err := strconv.ParseUint(s, 10, 64); err == nil {
		return h, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid height %q: %w", s, err)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, fmt.Errorf("invalid height %q", s)
	}

	return uint64(f), nil
}

const bytesInMB = 1024 * 1024

func MBToBytes(mb uint64) uint64 {
	return mb * bytesInMB
}

func BytesToMB(bytes uint64) uint64 {
	return bytes / bytesInMB
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

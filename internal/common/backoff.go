package common

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff returns the delay before retry number retry (1 = first retry): initial grown by
// multiplier per retry, capped at ceiling, with ±25% jitter.
func Backoff(retry int, initial, ceiling time.Duration, multiplier float64) time.Duration {
	if retry < 1 {
		return 0
	}

	backoff := float64(initial) * math.Pow(multiplier, float64(retry-1))
	if backoff > float64(ceiling) {
		backoff = float64(ceiling)
	}

	jitterRange := backoff * 0.25
	backoff += (rand.Float64() * 2 * jitterRange) - jitterRange

	if backoff < 0 {
		backoff = 0
	}

	return time.Duration(backoff)
}

package runtime

import (
	"time"

	"golang.org/x/time/rate"
)

// rateGuard limits calls of a single tool. A nil guard allows everything.
type rateGuard struct {
	limiter *rate.Limiter
}

func newRateGuard(perMinute int) *rateGuard {
	if perMinute <= 0 {
		return nil
	}
	return &rateGuard{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)}
}

// Allow consumes one call if available.
func (g *rateGuard) Allow() bool {
	if g == nil {
		return true
	}
	return g.limiter.Allow()
}

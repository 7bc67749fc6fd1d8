package request

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// NewRateLimit creates a new RateLimit based of time interval and how many
// actions allowed and breaks it down to an actions-per-second basis -- Burst
// rate is kept as one as this is not supported for out-bound requests.
func NewRateLimit(interval time.Duration, actions int) *rate.Limiter {
	if actions <= 0 || interval <= 0 {
		// Returns an un-restricted rate limiter
		return rate.NewLimiter(rate.Inf, 1)
	}

	i := 1 / interval.Seconds()
	rps := i * float64(actions)
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// WithLimiter sets a client side throttle which every request waits on before
// it is generated and sent
func WithLimiter(l *rate.Limiter) RequesterOption {
	return func(r *Requester) {
		r.limiter = l
	}
}

// WithUserAgent sets the user agent header sent when a request does not set
// its own
func WithUserAgent(ua string) RequesterOption {
	return func(r *Requester) {
		r.UserAgent = ua
	}
}

// initiateRateLimit blocks until the limiter permits a request or the context
// is done
func (r *Requester) initiateRateLimit(ctx context.Context) error {
	if r.limiter == nil || r.limiter.Limit() == rate.Inf {
		return nil
	}
	return r.limiter.Wait(ctx)
}

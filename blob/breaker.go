package blob

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/satheeshds/invoicing/logging"
	"github.com/satheeshds/invoicing/metrics"
)

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("image storage temporarily unavailable")

// BreakerConfig tunes the circuit breaker around an Uploader.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "cloudinary",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// Breaker fails uploads fast after repeated errors from the wrapped
// Uploader, then lets a probe through once Timeout has passed.
type Breaker struct {
	next Uploader
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreaker(next Uploader, cfg BreakerConfig) *Breaker {
	log := logging.WithComponent("blob")
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Cancelled requests say nothing about the health of the store.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[string](settings)}
}

func (b *Breaker) Upload(ctx context.Context, img Image) (string, error) {
	start := time.Now()
	url, err := b.cb.Execute(func() (string, error) {
		return b.next.Upload(ctx, img)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordImageUpload("rejected", time.Since(start))
		return "", ErrUnavailable
	case err != nil:
		metrics.RecordImageUpload("failure", time.Since(start))
		return "", err
	}
	metrics.RecordImageUpload("success", time.Since(start))
	return url, nil
}

// State reports the breaker state: "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return b.cb.State().String()
}

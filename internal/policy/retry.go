package policy

import (
	"context"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

// RetryPolicy — параметры повторов для одного вендора.
type RetryPolicy struct {
	MaxAttempts   int           `yaml:"max_attempts"`
	Initial       time.Duration `yaml:"initial"`
	Max           time.Duration `yaml:"max"`
	MaxRetryAfter time.Duration `yaml:"max_retry_after"`
}

// Retrier — ограниченный повтор транзиентных ошибок (Unavailable/RateLimited).
// Подсказка Retry-After от вендора имеет приоритет над расчётной задержкой.
type Retrier struct {
	maxAttempts   int
	maxRetryAfter time.Duration
	backoff       *Backoff
}

// NewRetrier - конструктор.
func NewRetrier(p RetryPolicy) *Retrier {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	mra := p.MaxRetryAfter
	if mra <= 0 {
		mra = 30 * time.Second
	}
	return &Retrier{
		maxAttempts:   attempts,
		maxRetryAfter: mra,
		backoff:       NewBackoff(p.Initial, p.Max),
	}
}

// MaxAttempts — сколько всего попыток (включая первую).
func (r *Retrier) MaxAttempts() int { return r.maxAttempts }

// Do — вызывает fn до MaxAttempts раз. onAttempt (может быть nil) получает результат каждой попытки;
// если он вернул false, повторы прекращаются (например, breaker открылся).
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error, onAttempt func(err error) bool) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if onAttempt != nil && !onAttempt(err) {
			return err
		}
		if err == nil || !domain.IsTransient(err) || attempt >= r.maxAttempts {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		if !sleepCtx(ctx.Done(), r.delay(attempt, err)) {
			return err
		}
	}
}

// delay — Retry-After (с потолком) или экспоненциальная задержка.
func (r *Retrier) delay(attempt int, err error) time.Duration {
	if hint, ok := domain.RetryAfterHint(err); ok {
		if hint > r.maxRetryAfter {
			return r.maxRetryAfter
		}
		return hint
	}
	return r.backoff.Delay(attempt)
}

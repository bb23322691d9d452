package policy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/policy"
)

func fastPolicy(attempts int) policy.RetryPolicy {
	return policy.RetryPolicy{MaxAttempts: attempts, Initial: time.Millisecond, Max: 2 * time.Millisecond}
}

func TestRetrier_RetriesTransientUntilSuccess(t *testing.T) {
	r := policy.NewRetrier(fastPolicy(3))

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return domain.Unavailable("a", nil)
		}
		return nil
	}, nil)
	if err != nil || calls != 3 {
		t.Fatalf("want success on 3rd attempt, got err=%v calls=%d", err, calls)
	}
}

func TestRetrier_StopsOnNonTransient(t *testing.T) {
	r := policy.NewRetrier(fastPolicy(5))

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return domain.AuthError("a", nil)
	}, nil)
	if !errors.Is(err, domain.ErrVendorAuth) || calls != 1 {
		t.Fatalf("auth errors must not be retried: err=%v calls=%d", err, calls)
	}
}

func TestRetrier_ExhaustsAttempts(t *testing.T) {
	r := policy.NewRetrier(fastPolicy(2))

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return domain.Unavailable("a", nil)
	}, nil)
	if !errors.Is(err, domain.ErrVendorUnavailable) || calls != 2 {
		t.Fatalf("want 2 attempts, got err=%v calls=%d", err, calls)
	}
}

func TestRetrier_HonorsRetryAfter(t *testing.T) {
	r := policy.NewRetrier(policy.RetryPolicy{
		MaxAttempts: 2, Initial: time.Millisecond, Max: time.Millisecond, MaxRetryAfter: time.Second,
	})

	start := time.Now()
	calls := 0
	_ = r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return domain.RateLimited("a", 50*time.Millisecond, nil)
		}
		return nil
	}, nil)
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("retry-after hint must override backoff, waited only %s", elapsed)
	}
}

func TestRetrier_OnAttemptCanStop(t *testing.T) {
	r := policy.NewRetrier(fastPolicy(5))

	calls := 0
	_ = r.Do(context.Background(), func(context.Context) error {
		calls++
		return domain.Unavailable("a", nil)
	}, func(error) bool { return false })
	if calls != 1 {
		t.Fatalf("onAttempt=false must stop retries, calls=%d", calls)
	}
}

func TestRetrier_ContextCancelled(t *testing.T) {
	r := policy.NewRetrier(policy.RetryPolicy{MaxAttempts: 5, Initial: time.Second, Max: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	_ = r.Do(ctx, func(context.Context) error {
		calls++
		return domain.Unavailable("a", nil)
	}, nil)
	if calls != 1 || time.Since(start) > 500*time.Millisecond {
		t.Fatalf("cancelled context must stop waiting: calls=%d", calls)
	}
}

func TestBackoff_Bounds(t *testing.T) {
	b := policy.NewBackoff(100*time.Millisecond, 400*time.Millisecond)
	for attempt := 1; attempt <= 6; attempt++ {
		d := b.Delay(attempt)
		if d < 50*time.Millisecond || d > 400*time.Millisecond {
			t.Fatalf("attempt %d: delay %s out of bounds", attempt, d)
		}
	}
}

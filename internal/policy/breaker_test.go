package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int, cooldown time.Duration) (*Breaker, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBreaker(BreakerConfig{FailureThreshold: threshold, Window: time.Minute, Cooldown: cooldown}, nil)
	b.now = clk.now
	return b, clk
}

var errDown = domain.Unavailable("a", errors.New("connection refused"))

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, 10*time.Second)

	for i := 0; i < 2; i++ {
		if !b.Allow() {
			t.Fatalf("closed breaker must allow call %d", i)
		}
		b.Record(errDown)
	}
	if b.State() != StateClosed {
		t.Fatalf("want closed before threshold, got %s", b.State())
	}

	b.Allow()
	b.Record(errDown)
	if b.State() != StateOpen {
		t.Fatalf("want open after threshold, got %s", b.State())
	}
	if b.Allow() {
		t.Fatalf("open breaker must not allow calls")
	}
}

func TestBreaker_HalfOpenAfterCooldown(t *testing.T) {
	b, clk := newTestBreaker(1, 10*time.Second)

	b.Record(errDown)
	if b.State() != StateOpen {
		t.Fatalf("want open")
	}

	clk.advance(9 * time.Second)
	if b.Allow() {
		t.Fatalf("must stay open until cooldown elapses")
	}

	clk.advance(time.Second)
	if b.State() != StateHalfOpen {
		t.Fatalf("want half_open after cooldown, got %s", b.State())
	}
	if !b.Allow() {
		t.Fatalf("half-open must allow a trial request")
	}
	if b.Allow() {
		t.Fatalf("half-open allows only one trial request at a time")
	}
}

func TestBreaker_HalfOpenTransitions(t *testing.T) {
	t.Run("success closes", func(t *testing.T) {
		b, clk := newTestBreaker(1, time.Second)
		b.Record(errDown)
		clk.advance(time.Second)
		b.Allow()
		b.Record(nil)
		if b.State() != StateClosed {
			t.Fatalf("want closed, got %s", b.State())
		}
	})

	t.Run("failure reopens", func(t *testing.T) {
		b, clk := newTestBreaker(1, time.Second)
		b.Record(errDown)
		clk.advance(time.Second)
		b.Allow()
		b.Record(domain.RateLimited("a", 0, nil))
		if b.State() != StateOpen {
			t.Fatalf("want open, got %s", b.State())
		}
	})
}

func TestBreaker_NonTransientDoesNotTrip(t *testing.T) {
	b, _ := newTestBreaker(2, time.Second)
	for i := 0; i < 5; i++ {
		b.Record(domain.Malformed("a", nil))
		b.Record(domain.AuthError("a", nil))
	}
	if b.State() != StateClosed {
		t.Fatalf("auth/malformed errors must not open the breaker")
	}
}

func TestBreaker_SuccessResetsStreak(t *testing.T) {
	b, _ := newTestBreaker(2, time.Second)
	b.Record(errDown)
	b.Record(nil)
	b.Record(errDown)
	if b.State() != StateClosed {
		t.Fatalf("failures must be consecutive")
	}
}

func TestBreaker_WindowResetsStreak(t *testing.T) {
	b, clk := newTestBreaker(2, time.Second)
	b.Record(errDown)
	clk.advance(2 * time.Minute)
	b.Record(errDown)
	if b.State() != StateClosed {
		t.Fatalf("failures outside the window must not accumulate")
	}
}

func TestBreakers_OnChange(t *testing.T) {
	var got []string
	r := NewBreakers(BreakerConfig{FailureThreshold: 1}, func(v domain.VendorID, from, to State) {
		got = append(got, string(v)+":"+from.String()+"->"+to.String())
	})
	r.For("mouser").Record(errDown)
	if len(got) != 1 || got[0] != "mouser:closed->open" {
		t.Fatalf("unexpected transitions: %v", got)
	}
	if r.For("mouser") != r.For("mouser") {
		t.Fatalf("registry must return the same breaker")
	}
}

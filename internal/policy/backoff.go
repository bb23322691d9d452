// Пакет policy - общая политика повторов (backoff с джиттером) и circuit breaker по вендорам.
package policy

import (
	"math/rand"
	"sync"
	"time"
)

// Backoff — экспоненциальная задержка с equal-jitter.
// Безопасен для конкурентного использования (источник случайности под мьютексом).
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

// NewBackoff - конструктор; нулевые значения заменяются дефолтами.
func NewBackoff(initial, maxDelay time.Duration) *Backoff {
	if initial <= 0 {
		initial = 200 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 5 * time.Second
	}
	if maxDelay < initial {
		maxDelay = initial
	}
	return &Backoff{
		Initial: initial,
		Max:     maxDelay,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Delay — задержка перед попыткой attempt (1 - первая повторная): initial*2^(attempt-1) с потолком Max.
func (b *Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := b.Initial
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= b.Max {
			d = b.Max
			break
		}
	}
	return b.withJitterEqual(d)
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (b *Backoff) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	b.mu.Lock()
	jitter := time.Duration(b.rand.Int63n(int64(d-half) + 1))
	b.mu.Unlock()
	return half + jitter
}

// sleepCtx ждёт d или отмену контекста.
func sleepCtx(ctxDone <-chan struct{}, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctxDone:
		return false
	case <-t.C:
		return true
	}
}

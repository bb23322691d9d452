package usecase

import (
	"context"
	"sync"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// flightCall — одна выполняющаяся выборка и её ожидающие.
type flightCall struct {
	done    chan struct{}
	parts   []domain.CanonicalPart
	err     error
	waiters int
	cancel  context.CancelFunc
}

// flightGroup — не более одной выборки на fingerprint.
// Выборка идёт на отвязанном контексте и отменяется, только когда её бросили все ожидающие.
type flightGroup struct {
	mu    sync.Mutex
	calls map[domain.Fingerprint]*flightCall
}

// Do — присоединиться к выборке по ключу или запустить новую.
// shared=true, если вызывающий пришёл к уже начатой выборке.
func (g *flightGroup) Do(
	ctx context.Context,
	key domain.Fingerprint,
	fn func(ctx context.Context) ([]domain.CanonicalPart, error),
) (parts []domain.CanonicalPart, shared bool, err error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[domain.Fingerprint]*flightCall)
	}
	if c, ok := g.calls[key]; ok {
		c.waiters++
		g.mu.Unlock()
		metrics.CoalescedWaiters.Inc()
		parts, err = g.wait(ctx, key, c)
		return parts, true, err
	}

	// значения контекста (request id, span) сохраняются, отмена - нет
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c := &flightCall{done: make(chan struct{}), waiters: 1, cancel: cancel}
	g.calls[key] = c
	g.mu.Unlock()

	go func() {
		defer cancel()
		c.parts, c.err = fn(fctx)

		g.mu.Lock()
		if g.calls[key] == c {
			delete(g.calls, key)
		}
		g.mu.Unlock()
		close(c.done)
	}()

	parts, err = g.wait(ctx, key, c)
	return parts, false, err
}

func (g *flightGroup) wait(ctx context.Context, key domain.Fingerprint, c *flightCall) ([]domain.CanonicalPart, error) {
	select {
	case <-c.done:
		return domain.CloneParts(c.parts), c.err
	case <-ctx.Done():
		g.mu.Lock()
		c.waiters--
		if c.waiters == 0 {
			c.cancel()
			// следующий запрос с тем же ключом начнёт новую выборку
			if g.calls[key] == c {
				delete(g.calls, key)
			}
		}
		g.mu.Unlock()
		return nil, ctx.Err()
	}
}

// inFlight — количество выполняющихся выборок.
func (g *flightGroup) inFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

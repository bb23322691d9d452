package policy

import (
	"sync"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

// State — состояние circuit breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// BreakerConfig — порог подряд идущих транзиентных отказов в окне и время остывания.
type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	Window           time.Duration `yaml:"window"`
	Cooldown         time.Duration `yaml:"cooldown"`
}

// Breaker — Closed -> Open -> HalfOpen -> Closed.
// В HalfOpen пропускается одна пробная попытка за раз.
type Breaker struct {
	cfg      BreakerConfig
	now      func() time.Time
	onChange func(from, to State)

	mu          sync.Mutex
	state       State
	failures    int
	streakStart time.Time
	openedAt    time.Time
	probing     bool
}

// NewBreaker - конструктор; onChange может быть nil.
func NewBreaker(cfg BreakerConfig, onChange func(from, to State)) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{cfg: cfg, now: time.Now, onChange: onChange}
}

// State — текущее состояние (Open с истёкшим cooldown отображается как HalfOpen).
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(b.now())
	return b.state
}

// Allow — можно ли сейчас обращаться к вендору. В HalfOpen занимает слот пробы.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(b.now())

	switch b.state {
	case StateOpen:
		return false
	case StateHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return true
	}
}

// Record — результат одного вызова вендора.
// Только Unavailable/RateLimited считаются отказом; остальные ошибки означают, что вендор отвечает.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.advance(now)

	failed := err != nil && domain.IsTransient(err)

	switch b.state {
	case StateHalfOpen:
		b.probing = false
		if failed {
			b.open(now)
		} else {
			b.setState(StateClosed)
			b.failures = 0
		}
	case StateClosed:
		if !failed {
			if err == nil {
				b.failures = 0
			}
			return
		}
		if b.failures == 0 || now.Sub(b.streakStart) > b.cfg.Window {
			b.failures = 0
			b.streakStart = now
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.open(now)
		}
	case StateOpen:
		// вызов был разрешён до открытия; результат не меняет состояние
	}
}

// Release — отменённая проба в HalfOpen (например, по таймауту вызывающего) освобождает слот.
func (b *Breaker) Release() {
	b.mu.Lock()
	b.probing = false
	b.mu.Unlock()
}

func (b *Breaker) advance(now time.Time) {
	if b.state == StateOpen && now.Sub(b.openedAt) >= b.cfg.Cooldown {
		b.setState(StateHalfOpen)
		b.probing = false
	}
}

func (b *Breaker) open(now time.Time) {
	b.setState(StateOpen)
	b.openedAt = now
	b.failures = 0
	b.probing = false
}

func (b *Breaker) setState(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if b.onChange != nil {
		b.onChange(from, to)
	}
}

// Breakers — реестр breaker'ов по вендорам.
type Breakers struct {
	mu       sync.Mutex
	items    map[domain.VendorID]*Breaker
	defaults BreakerConfig
	onChange func(vendor domain.VendorID, from, to State)
}

// NewBreakers - конструктор реестра.
func NewBreakers(defaults BreakerConfig, onChange func(vendor domain.VendorID, from, to State)) *Breakers {
	return &Breakers{items: make(map[domain.VendorID]*Breaker), defaults: defaults, onChange: onChange}
}

// Configure — собственные параметры для вендора (до первого обращения).
func (r *Breakers) Configure(vendor domain.VendorID, cfg BreakerConfig) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.newBreaker(vendor, cfg)
	r.items[vendor] = b
	return b
}

// For — breaker вендора (создаётся с параметрами по умолчанию).
func (r *Breakers) For(vendor domain.VendorID) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.items[vendor]; ok {
		return b
	}
	b := r.newBreaker(vendor, r.defaults)
	r.items[vendor] = b
	return b
}

func (r *Breakers) newBreaker(vendor domain.VendorID, cfg BreakerConfig) *Breaker {
	var cb func(from, to State)
	if r.onChange != nil {
		cb = func(from, to State) { r.onChange(vendor, from, to) }
	}
	return NewBreaker(cfg, cb)
}

// Пакет provider - адаптеры API дистрибьюторов электронных компонентов.
// Каждый адаптер переводит ответы и ошибки своего вендора в общую таксономию domain.
package provider

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/policy"
	"github.com/Gunvolt24/partswarm/internal/ports"
)

// Kind — протокол/схема вендора; несколько VendorID могут использовать один Kind (регионы, аккаунты).
type Kind string

const (
	KindDigiKey Kind = "digikey"
	KindMouser  Kind = "mouser"
	KindArrow   Kind = "arrow"
)

// Config — описание одного вендора (из YAML-файла вендоров).
type Config struct {
	ID           domain.VendorID      `yaml:"id"`
	Kind         Kind                 `yaml:"kind"`
	Priority     int                  `yaml:"priority"`
	BaseURL      string               `yaml:"base_url"`
	TokenURL     string               `yaml:"token_url"`
	ClientID     string               `yaml:"client_id"`
	ClientSecret string               `yaml:"client_secret"`
	APIKey       string               `yaml:"api_key"`
	Login        string               `yaml:"login"`
	Locale       string               `yaml:"locale"`
	Currency     string               `yaml:"currency"`
	Timeout      time.Duration        `yaml:"timeout"`
	Retry        policy.RetryPolicy   `yaml:"retry"`
	Breaker      policy.BreakerConfig `yaml:"breaker"`
}

// Entry — адаптер в реестре вместе с его политиками.
type Entry struct {
	Provider ports.Provider
	Priority int
	Order    int
	Retry    policy.RetryPolicy
	Breaker  policy.BreakerConfig
}

// Registry — адаптеры по VendorID, упорядоченные по приоритету (при равенстве - порядок объявления).
type Registry struct {
	entries []Entry
	byID    map[domain.VendorID]int
	kinds   map[domain.VendorID]Kind
}

// NewRegistry - пустой реестр.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[domain.VendorID]int), kinds: make(map[domain.VendorID]Kind)}
}

// Register — добавить адаптер; повторный ID - ошибка.
func (r *Registry) Register(p ports.Provider, kind Kind, priority int, retry policy.RetryPolicy, breaker policy.BreakerConfig) error {
	id := p.ID()
	if _, ok := r.byID[id]; ok {
		return fmt.Errorf("vendor %q registered twice", id)
	}
	r.entries = append(r.entries, Entry{Provider: p, Priority: priority, Order: len(r.entries), Retry: retry, Breaker: breaker})
	r.kinds[id] = kind
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].Priority != r.entries[j].Priority {
			return r.entries[i].Priority < r.entries[j].Priority
		}
		return r.entries[i].Order < r.entries[j].Order
	})
	for i, e := range r.entries {
		r.byID[e.Provider.ID()] = i
	}
	return nil
}

// Ordered — адаптеры в порядке приоритета.
func (r *Registry) Ordered() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Get — адаптер по ID.
func (r *Registry) Get(id domain.VendorID) (Entry, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Kinds — соответствие VendorID -> Kind (нужно нормализатору).
func (r *Registry) Kinds() map[domain.VendorID]Kind {
	out := make(map[domain.VendorID]Kind, len(r.kinds))
	for k, v := range r.kinds {
		out[k] = v
	}
	return out
}

// Len — количество адаптеров.
func (r *Registry) Len() int { return len(r.entries) }

// Build — создать адаптер по конфигурации.
func Build(cfg *Config, client *http.Client) (ports.Provider, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("vendor id is required")
	}
	switch Kind(strings.ToLower(string(cfg.Kind))) {
	case KindDigiKey:
		return NewDigiKey(cfg, client)
	case KindMouser:
		return NewMouser(cfg, client)
	case KindArrow:
		return NewArrow(cfg, client)
	default:
		return nil, fmt.Errorf("vendor %q: unknown kind %q", cfg.ID, cfg.Kind)
	}
}

// BuildRegistry — реестр из списка конфигураций.
func BuildRegistry(cfgs []Config, client *http.Client) (*Registry, error) {
	reg := NewRegistry()
	for i := range cfgs {
		p, err := Build(&cfgs[i], client)
		if err != nil {
			return nil, err
		}
		kind := Kind(strings.ToLower(string(cfgs[i].Kind)))
		if err := reg.Register(p, kind, cfgs[i].Priority, cfgs[i].Retry, cfgs[i].Breaker); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

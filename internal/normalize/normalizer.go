// Пакет normalize переводит сырые ответы вендоров в CanonicalPart
// и упаковывает результат в версионированный конверт.
package normalize

import (
	"fmt"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/provider"
)

// VendorFunc — чистая функция нормализации одного вендора.
type VendorFunc func(vendor domain.VendorID, raw *domain.RawResult) ([]domain.CanonicalPart, error)

var byKind = map[provider.Kind]VendorFunc{
	provider.KindDigiKey: normalizeDigiKey,
	provider.KindMouser:  normalizeMouser,
	provider.KindArrow:   normalizeArrow,
}

// Normalizer — реестр функций нормализации по VendorID плюс кодек конвертов.
// Реализует ports.PartCodec.
type Normalizer struct {
	funcs map[domain.VendorID]VendorFunc
	*Codec
}

// New — kinds сопоставляет каждому VendorID протокол его адаптера.
func New(kinds map[domain.VendorID]provider.Kind, codec *Codec) (*Normalizer, error) {
	if codec == nil {
		codec = NewCodec(0)
	}
	n := &Normalizer{funcs: make(map[domain.VendorID]VendorFunc, len(kinds)), Codec: codec}
	for id, kind := range kinds {
		fn, ok := byKind[kind]
		if !ok {
			return nil, fmt.Errorf("no normalizer for vendor %q of kind %q", id, kind)
		}
		n.funcs[id] = fn
	}
	return n, nil
}

// Register — добавить/заменить функцию для вендора.
func (n *Normalizer) Register(id domain.VendorID, fn VendorFunc) {
	n.funcs[id] = fn
}

// Normalize — пустое тело (вендор ничего не нашёл) даёт пустой срез без ошибки.
func (n *Normalizer) Normalize(vendor domain.VendorID, raw *domain.RawResult) ([]domain.CanonicalPart, error) {
	if vendor == "" {
		return nil, fmt.Errorf("%w: vendor is required", domain.ErrNormalization)
	}
	fn, ok := n.funcs[vendor]
	if !ok {
		return nil, fmt.Errorf("%w: unknown vendor %q", domain.ErrNormalization, vendor)
	}
	if raw == nil || len(raw.Body) == 0 {
		return nil, nil
	}
	parts, err := fn(vendor, raw)
	if err != nil {
		return nil, err
	}
	for i := range parts {
		finish(&parts[i], vendor, raw)
		if err := parts[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNormalization, err)
		}
	}
	return parts, nil
}

// finish — общие для всех вендоров правила: вендор, время выборки,
// отрицательные значения в ноль, ступени по возрастанию.
func finish(p *domain.CanonicalPart, vendor domain.VendorID, raw *domain.RawResult) {
	p.Vendor = vendor
	p.FetchedAt = raw.ReceivedAt
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	for i := range p.PricingTiers {
		if p.PricingTiers[i].QuantityBreak < 0 {
			p.PricingTiers[i].QuantityBreak = 0
		}
		if p.PricingTiers[i].UnitPrice < 0 {
			p.PricingTiers[i].UnitPrice = 0
		}
	}
	p.SortTiers()
}

func missingPartNumber(vendor domain.VendorID, idx int) error {
	return fmt.Errorf("%w: %s candidate %d has no part number", domain.ErrNormalization, vendor, idx)
}

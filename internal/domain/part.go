package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidPart — каноническая запись нарушает инварианты модели.
var ErrInvalidPart = errors.New("invalid canonical part")

// PriceTier — ценовая ступень (от какого количества, цена за штуку, валюта).
type PriceTier struct {
	QuantityBreak int64   `json:"quantity_break"`
	UnitPrice     float64 `json:"unit_price"`
	Currency      string  `json:"currency"`
}

// CanonicalPart — независимая от вендора запись о детали.
type CanonicalPart struct {
	PartNumber    string      `json:"part_number"`
	Manufacturer  string      `json:"manufacturer"`
	Description   string      `json:"description"`
	DatasheetURL  string      `json:"datasheet_url"`
	ProductURL    string      `json:"product_url,omitempty"`
	ImageURL      string      `json:"image_url,omitempty"`
	Package       string      `json:"package,omitempty"`
	PricingTiers  []PriceTier `json:"pricing_tiers"`
	StockQuantity int64       `json:"stock_quantity"`
	Vendor        VendorID    `json:"vendor"`
	FetchedAt     time.Time   `json:"fetched_at"`
}

// Validate — числовые поля неотрицательны, ступени отсортированы по возрастанию количества.
func (p *CanonicalPart) Validate() error {
	if p.PartNumber == "" {
		return fmt.Errorf("%w: part_number is required", ErrInvalidPart)
	}
	if p.Vendor == "" {
		return fmt.Errorf("%w: vendor is required", ErrInvalidPart)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock_quantity must be non-negative", ErrInvalidPart)
	}
	for i, t := range p.PricingTiers {
		if t.QuantityBreak < 0 || t.UnitPrice < 0 {
			return fmt.Errorf("%w: pricing tier %d has negative values", ErrInvalidPart, i)
		}
		if i > 0 && p.PricingTiers[i-1].QuantityBreak > t.QuantityBreak {
			return fmt.Errorf("%w: pricing tiers are not ascending", ErrInvalidPart)
		}
	}
	return nil
}

// SortTiers — упорядочить ступени по количеству (стабильно, порядок вендора сохраняется при равенстве).
func (p *CanonicalPart) SortTiers() {
	sort.SliceStable(p.PricingTiers, func(i, j int) bool {
		return p.PricingTiers[i].QuantityBreak < p.PricingTiers[j].QuantityBreak
	})
}

// Key — идентичность записи в пределах результата: (партномер, вендор).
func (p *CanonicalPart) Key() string { return string(p.Vendor) + "\x00" + p.PartNumber }

// CloneParts — глубокая копия, чтобы вызывающие не разделяли срезы ступеней.
func CloneParts(in []CanonicalPart) []CanonicalPart {
	if in == nil {
		return nil
	}
	out := make([]CanonicalPart, len(in))
	for i := range in {
		out[i] = in[i]
		if in[i].PricingTiers != nil {
			out[i].PricingTiers = append([]PriceTier(nil), in[i].PricingTiers...)
		}
	}
	return out
}

package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/provider"
)

func normalizeDigiKey(vendor domain.VendorID, raw *domain.RawResult) ([]domain.CanonicalPart, error) {
	var resp provider.DigiKeySearchResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNormalization, vendor, err)
	}
	currency := resp.SearchLocale.Currency
	if currency == "" {
		currency = "USD"
	}

	out := make([]domain.CanonicalPart, 0, len(resp.Products))
	for i, p := range resp.Products {
		pn := strings.TrimSpace(p.ManufacturerProductNumber)
		if pn == "" {
			return nil, missingPartNumber(vendor, i)
		}
		part := domain.CanonicalPart{
			PartNumber:    pn,
			Manufacturer:  strings.TrimSpace(p.Manufacturer.Name),
			Description:   firstNonEmpty(p.Description.ProductDescription, p.Description.DetailedDescription),
			DatasheetURL:  strings.TrimSpace(p.DatasheetURL),
			ProductURL:    strings.TrimSpace(p.ProductURL),
			ImageURL:      strings.TrimSpace(p.PhotoURL),
			StockQuantity: p.QuantityAvailable,
		}
		if len(p.Variations) > 0 {
			v := p.Variations[0]
			part.Package = strings.TrimSpace(v.PackageType.Name)
			for _, b := range v.StandardPricing {
				part.PricingTiers = append(part.PricingTiers, domain.PriceTier{
					QuantityBreak: b.BreakQuantity,
					UnitPrice:     b.UnitPrice,
					Currency:      currency,
				})
			}
		}
		if len(part.PricingTiers) == 0 && p.UnitPrice > 0 {
			part.PricingTiers = []domain.PriceTier{{QuantityBreak: 1, UnitPrice: p.UnitPrice, Currency: currency}}
		}
		out = append(out, part)
	}
	return out, nil
}

func normalizeMouser(vendor domain.VendorID, raw *domain.RawResult) ([]domain.CanonicalPart, error) {
	var resp provider.MouserSearchResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNormalization, vendor, err)
	}
	if resp.SearchResults == nil {
		return nil, nil
	}

	out := make([]domain.CanonicalPart, 0, len(resp.SearchResults.Parts))
	for i, p := range resp.SearchResults.Parts {
		pn := firstNonEmpty(p.ManufacturerPartNumber, p.MouserPartNumber)
		if pn == "" {
			return nil, missingPartNumber(vendor, i)
		}
		part := domain.CanonicalPart{
			PartNumber:   pn,
			Manufacturer: strings.TrimSpace(p.Manufacturer),
			Description:  strings.TrimSpace(p.Description),
			DatasheetURL: strings.TrimSpace(p.DataSheetURL),
			ProductURL:   strings.TrimSpace(p.ProductDetailURL),
			ImageURL:     strings.TrimSpace(p.ImagePath),
		}
		if p.AvailabilityInStock != "" {
			part.StockQuantity = parseQuantity(p.AvailabilityInStock)
		} else {
			part.StockQuantity = parseQuantity(p.Availability)
		}
		for _, a := range p.ProductAttributes {
			if strings.EqualFold(a.AttributeName, "Packaging") || strings.EqualFold(a.AttributeName, "Package / Case") {
				part.Package = strings.TrimSpace(a.AttributeValue)
				break
			}
		}
		for _, b := range p.PriceBreaks {
			price, ok := parsePrice(b.Price)
			if !ok {
				// "Quote", пустая строка: ступень без цены пропускаем, деталь остаётся
				continue
			}
			part.PricingTiers = append(part.PricingTiers, domain.PriceTier{
				QuantityBreak: b.Quantity,
				UnitPrice:     price,
				Currency:      strings.TrimSpace(b.Currency),
			})
		}
		out = append(out, part)
	}
	return out, nil
}

func normalizeArrow(vendor domain.VendorID, raw *domain.RawResult) ([]domain.CanonicalPart, error) {
	var resp provider.ArrowSearchResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNormalization, vendor, err)
	}

	var out []domain.CanonicalPart
	idx := 0
	for _, d := range resp.ItemServiceResult.Data {
		for _, p := range d.PartList {
			pn := strings.TrimSpace(p.PartNum)
			if pn == "" {
				return nil, missingPartNumber(vendor, idx)
			}
			idx++
			part := domain.CanonicalPart{
				PartNumber:   pn,
				Manufacturer: strings.TrimSpace(p.Manufacturer.MfrName),
				Description:  strings.TrimSpace(p.Desc),
				Package:      strings.TrimSpace(p.Package),
			}
			for _, r := range p.Resources {
				switch strings.ToLower(r.Type) {
				case "datasheet":
					if part.DatasheetURL == "" {
						part.DatasheetURL = r.URI
					}
				case "image_large", "image_small", "image":
					if part.ImageURL == "" {
						part.ImageURL = r.URI
					}
				case "cloud_part_detail", "detail":
					if part.ProductURL == "" {
						part.ProductURL = r.URI
					}
				}
			}
			arrowOffers(&part, p)
			out = append(out, part)
		}
	}
	return out, nil
}

// arrowOffers — склад суммируется по всем источникам, цены берутся из первого источника с прайсом.
func arrowOffers(part *domain.CanonicalPart, p provider.ArrowPart) {
	for _, site := range p.InvOrg.WebSites {
		for _, src := range site.Sources {
			for _, sp := range src.SourceParts {
				for _, a := range sp.Availability {
					part.StockQuantity += a.FohQty
				}
				if len(part.PricingTiers) > 0 {
					continue
				}
				for _, r := range sp.Prices.ResaleList {
					part.PricingTiers = append(part.PricingTiers, domain.PriceTier{
						QuantityBreak: r.MinQty,
						UnitPrice:     r.Price,
						Currency:      src.Currency,
					})
				}
			}
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

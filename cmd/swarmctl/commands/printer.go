package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	faint  = color.New(color.Faint)
)

// printer — вывод команд; цвета отключаются сами без TTY и при NO_COLOR.
type printer struct {
	out  io.Writer
	err  io.Writer
	json bool
}

func (p *printer) parts(parts []domain.CanonicalPart) error {
	if p.json {
		return p.writeJSON(parts)
	}
	for i := range parts {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		p.part(&parts[i])
	}
	return nil
}

func (p *printer) single(part domain.CanonicalPart) error {
	if p.json {
		return p.writeJSON(part)
	}
	p.part(&part)
	return nil
}

func (p *printer) part(c *domain.CanonicalPart) {
	cyan.Fprintf(p.out, "%s", c.PartNumber)
	fmt.Fprintf(p.out, "  %s  ", c.Manufacturer)
	faint.Fprintf(p.out, "[%s]\n", c.Vendor)
	if c.Description != "" {
		fmt.Fprintf(p.out, "  %s\n", c.Description)
	}
	if c.Package != "" {
		fmt.Fprintf(p.out, "  package:   %s\n", c.Package)
	}
	if c.StockQuantity > 0 {
		green.Fprintf(p.out, "  stock:     %d\n", c.StockQuantity)
	} else {
		yellow.Fprintf(p.out, "  stock:     0\n")
	}
	if len(c.PricingTiers) > 0 {
		tiers := make([]string, 0, len(c.PricingTiers))
		for _, t := range c.PricingTiers {
			tiers = append(tiers, fmt.Sprintf("%d+ %.4g %s", t.QuantityBreak, t.UnitPrice, t.Currency))
		}
		fmt.Fprintf(p.out, "  pricing:   %s\n", strings.Join(tiers, ", "))
	}
	if c.DatasheetURL != "" {
		fmt.Fprintf(p.out, "  datasheet: %s\n", c.DatasheetURL)
	}
}

func (p *printer) vendors(vs []domain.VendorStatus) error {
	if p.json {
		return p.writeJSON(vs)
	}
	for _, v := range vs {
		fmt.Fprintf(p.out, "%-12s priority=%-3d breaker=", v.Vendor, v.Priority)
		switch v.Breaker {
		case "closed":
			green.Fprintln(p.out, v.Breaker)
		case "open":
			red.Fprintln(p.out, v.Breaker)
		default:
			yellow.Fprintln(p.out, v.Breaker)
		}
	}
	return nil
}

func (p *printer) success(format string, a ...any) {
	green.Fprintf(p.err, "✓ "+format+"\n", a...)
}

func (p *printer) warning(format string, a ...any) {
	yellow.Fprintf(p.err, "! "+format+"\n", a...)
}

// fail — печатает ошибку с пояснением и возвращает короткую ошибку для cobra.
func (p *printer) fail(title, explanation string) error {
	red.Fprintf(p.err, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(p.err, "%s\n", explanation)
	}
	return fmt.Errorf("%s", title)
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package validate

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
)

// ForEachCSVQuery читает BOM-список: заголовок с колонкой part_number (или mpn),
// необязательные keywords и vendors со значениями через ';'.
func ForEachCSVQuery(ctx context.Context, v ports.QueryValidator, r io.Reader, fn func(domain.PartQuery) error) (Summary, error) {
	var s Summary

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		return s, fmt.Errorf("%w: csv header: %v", domain.ErrInvalidQuery, err)
	}
	cols := csvColumns(header)
	if cols.part < 0 {
		return s, fmt.Errorf("%w: csv header has no part_number column", domain.ErrInvalidQuery)
	}

	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				s.Invalid++
				continue
			}
			return s, fmt.Errorf("read csv: %w", err)
		}
		if blank(rec) {
			continue
		}

		q := cols.query(rec)
		if err := v.ValidatePart(ctx, &q); err != nil {
			s.Invalid++
			continue
		}
		if err := fn(q.Normalize()); err != nil {
			return s, err
		}
		s.Valid++
	}
}

type csvLayout struct{ part, keywords, vendors int }

func csvColumns(header []string) csvLayout {
	l := csvLayout{part: -1, keywords: -1, vendors: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))) {
		case "part_number", "partnumber", "mpn":
			l.part = i
		case "keywords":
			l.keywords = i
		case "vendors":
			l.vendors = i
		}
	}
	return l
}

func (l csvLayout) query(rec []string) domain.PartQuery {
	q := domain.PartQuery{PartNumber: field(rec, l.part)}
	q.Keywords = splitList(field(rec, l.keywords))
	for _, id := range splitList(field(rec, l.vendors)) {
		q.Vendors = append(q.Vendors, domain.VendorID(strings.ToLower(id)))
	}
	return q
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

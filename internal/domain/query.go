package domain

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// VendorID — идентификатор поставщика (digikey, mouser, arrow, ...).
type VendorID string

// QueryType — тип запроса к Swarm (часть протокола обмена с пирами).
type QueryType string

const (
	QueryTypePart      QueryType = "part"
	QueryTypeDatasheet QueryType = "datasheet"
)

// ErrInvalidQuery — запрос не прошёл базовую проверку (пустой партномер, битый URL).
var ErrInvalidQuery = errors.New("invalid query")

// PartQuery — поиск по партномеру.
type PartQuery struct {
	PartNumber string     `json:"part_number" validate:"required"`
	Keywords   []string   `json:"keywords,omitempty"`
	Vendors    []VendorID `json:"vendors,omitempty"`
}

// DatasheetQuery — поиск даташита по абсолютному URL.
type DatasheetQuery struct {
	URL      string   `json:"url" validate:"required,url"`
	Keywords []string `json:"keywords,omitempty"`
}

// Normalize — возвращает копию запроса в канонической форме:
// партномер обрезан и в верхнем регистре, ключевые слова и вендоры - отсортированные множества.
func (q PartQuery) Normalize() PartQuery {
	return PartQuery{
		PartNumber: strings.ToUpper(strings.TrimSpace(q.PartNumber)),
		Keywords:   normalizeKeywords(q.Keywords),
		Vendors:    normalizeVendors(q.Vendors),
	}
}

// Validate — партномер обязателен.
func (q PartQuery) Validate() error {
	if strings.TrimSpace(q.PartNumber) == "" {
		return fmt.Errorf("%w: part number is required", ErrInvalidQuery)
	}
	return nil
}

// WantsVendor — пустой список вендоров означает "все настроенные".
func (q PartQuery) WantsVendor(id VendorID) bool {
	if len(q.Vendors) == 0 {
		return true
	}
	for _, v := range q.Vendors {
		if v == id {
			return true
		}
	}
	return false
}

// Normalize — схема и хост в нижнем регистре, без фрагмента; ключевые слова - множество.
func (q DatasheetQuery) Normalize() DatasheetQuery {
	out := DatasheetQuery{URL: strings.TrimSpace(q.URL), Keywords: normalizeKeywords(q.Keywords)}
	if u, err := url.Parse(out.URL); err == nil {
		u.Scheme = strings.ToLower(u.Scheme)
		u.Host = strings.ToLower(u.Host)
		u.Fragment = ""
		out.URL = u.String()
	}
	return out
}

// Validate — URL должен быть абсолютным http(s).
func (q DatasheetQuery) Validate() error {
	raw := strings.TrimSpace(q.URL)
	if raw == "" {
		return fmt.Errorf("%w: datasheet url is required", ErrInvalidQuery)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: datasheet url must be absolute", ErrInvalidQuery)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("%w: unsupported url scheme %q", ErrInvalidQuery, u.Scheme)
	}
}

func normalizeKeywords(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func normalizeVendors(in []VendorID) []VendorID {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[VendorID]struct{}, len(in))
	out := make([]VendorID, 0, len(in))
	for _, v := range in {
		v = VendorID(strings.ToLower(strings.TrimSpace(string(v))))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

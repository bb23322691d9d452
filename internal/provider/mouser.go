package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

const defaultMouserURL = "https://api.mouser.com"

// MouserAdapter — Mouser Search API, ключ передаётся в query string.
type MouserAdapter struct {
	id      domain.VendorID
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

// NewMouser - конструктор.
func NewMouser(cfg *Config, client *http.Client) (*MouserAdapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vendor %q: api_key is required", cfg.ID)
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultMouserURL
	}
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	return &MouserAdapter{
		id:      cfg.ID,
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
		now:     time.Now,
	}, nil
}

func (a *MouserAdapter) ID() domain.VendorID { return a.id }

// EnsureAuthenticated — ключ статический, обновлять нечего.
func (a *MouserAdapter) EnsureAuthenticated(context.Context) error { return nil }

func (a *MouserAdapter) SearchPart(ctx context.Context, q domain.PartQuery) (*domain.RawResult, error) {
	if len(q.Keywords) == 0 {
		body := map[string]any{
			"SearchByPartRequest": map[string]any{
				"mouserPartNumber":  q.PartNumber,
				"partSearchOptions": "None",
			},
		}
		return a.search(ctx, "/api/v1/search/partnumber", body)
	}
	return a.searchKeyword(ctx, partSearchTerm(q))
}

func (a *MouserAdapter) FetchDatasheet(ctx context.Context, q domain.DatasheetQuery) (*domain.RawResult, error) {
	return a.searchKeyword(ctx, datasheetSearchTerm(q))
}

func (a *MouserAdapter) searchKeyword(ctx context.Context, keyword string) (*domain.RawResult, error) {
	body := map[string]any{
		"SearchByKeywordRequest": map[string]any{
			"keyword":        keyword,
			"records":        50,
			"startingRecord": 0,
		},
	}
	return a.search(ctx, "/api/v1/search/keyword", body)
}

func (a *MouserAdapter) search(ctx context.Context, path string, payload any) (*domain.RawResult, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal mouser request: %w", err)
	}
	endpoint := a.baseURL + path + "?" + url.Values{"apiKey": {a.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build mouser request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := do(ctx, a.client, a.id, req)
	if err != nil {
		return nil, authFailed(a.id, err)
	}
	if body == nil {
		return a.raw(nil), nil
	}

	var resp MouserSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.Malformed(a.id, err)
	}
	if err := a.apiError(resp.Errors); err != nil {
		return nil, err
	}
	return a.raw(body), nil
}

// apiError — Mouser возвращает ошибки с кодом 200 внутри тела.
func (a *MouserAdapter) apiError(errs []MouserError) error {
	if len(errs) == 0 {
		return nil
	}
	e := errs[0]
	cause := errors.New(strings.TrimSpace(e.Code + " " + e.Message))
	code := strings.ToLower(e.Code + " " + e.Message)
	switch {
	case strings.Contains(code, "toomanyrequests"), strings.Contains(code, "rate limit"), strings.Contains(code, "maximum calls"):
		return domain.RateLimited(a.id, 0, cause)
	case strings.Contains(code, "invalid") && strings.Contains(code, "key"),
		strings.Contains(code, "unauthorized"), strings.Contains(code, "apikey"):
		return domain.AuthError(a.id, cause)
	default:
		return domain.Malformed(a.id, cause)
	}
}

func (a *MouserAdapter) raw(body []byte) *domain.RawResult {
	return &domain.RawResult{Vendor: a.id, Body: body, ContentType: "application/json", ReceivedAt: a.now().UTC()}
}

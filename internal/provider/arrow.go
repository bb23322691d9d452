package provider

import (
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

const defaultArrowURL = "https://api.arrow.com"

// ArrowAdapter — Arrow itemservice; login и apikey в query string.
type ArrowAdapter struct {
	id      domain.VendorID
	baseURL string
	login   string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

// NewArrow - конструктор.
func NewArrow(cfg *Config, client *http.Client) (*ArrowAdapter, error) {
	if cfg.Login == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("vendor %q: login and api_key are required", cfg.ID)
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultArrowURL
	}
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	return &ArrowAdapter{
		id:      cfg.ID,
		baseURL: strings.TrimRight(base, "/"),
		login:   cfg.Login,
		apiKey:  cfg.APIKey,
		client:  client,
		now:     time.Now,
	}, nil
}

func (a *ArrowAdapter) ID() domain.VendorID { return a.id }

func (a *ArrowAdapter) EnsureAuthenticated(context.Context) error { return nil }

func (a *ArrowAdapter) SearchPart(ctx context.Context, q domain.PartQuery) (*domain.RawResult, error) {
	return a.search(ctx, partSearchTerm(q))
}

func (a *ArrowAdapter) FetchDatasheet(ctx context.Context, q domain.DatasheetQuery) (*domain.RawResult, error) {
	return a.search(ctx, datasheetSearchTerm(q))
}

func (a *ArrowAdapter) search(ctx context.Context, token string) (*domain.RawResult, error) {
	params := url.Values{
		"login":        {a.login},
		"apikey":       {a.apiKey},
		"search_token": {token},
		"rows":         {"25"},
	}
	endpoint := a.baseURL + "/itemservice/v4/en/search/token?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build arrow request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := do(ctx, a.client, a.id, req)
	if err != nil {
		return nil, authFailed(a.id, err)
	}
	if body == nil {
		return a.raw(nil), nil
	}

	var resp ArrowSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.Malformed(a.id, err)
	}
	for _, t := range resp.ItemServiceResult.TransactionArea {
		if err := a.transactionError(t.Response.ReturnCode, t.Response.ReturnMsg, t.Response.Success); err != nil {
			return nil, err
		}
	}
	return a.raw(body), nil
}

// transactionError — Arrow сообщает об ошибках через transactionArea.
func (a *ArrowAdapter) transactionError(code, msg string, success bool) error {
	if success || code == "" || code == "0" {
		return nil
	}
	cause := errors.New(strings.TrimSpace(code + " " + msg))
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "limit"), strings.Contains(lower, "throttl"):
		return domain.RateLimited(a.id, 0, cause)
	case strings.Contains(lower, "login"), strings.Contains(lower, "apikey"), strings.Contains(lower, "auth"):
		return domain.AuthError(a.id, cause)
	default:
		return domain.Malformed(a.id, cause)
	}
}

func (a *ArrowAdapter) raw(body []byte) *domain.RawResult {
	return &domain.RawResult{Vendor: a.id, Body: body, ContentType: "application/json", ReceivedAt: a.now().UTC()}
}

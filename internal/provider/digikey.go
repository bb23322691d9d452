package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

const (
	defaultDigiKeyURL      = "https://api.digikey.com"
	defaultDigiKeyTokenURL = "https://api.digikey.com/v1/oauth2/token"
)

// DigiKeyAdapter — DigiKey Product Information v4, OAuth2 client credentials.
type DigiKeyAdapter struct {
	id       domain.VendorID
	baseURL  string
	clientID string
	site     string
	currency string
	client   *http.Client
	creds    *oauthCredentials
	now      func() time.Time
}

// NewDigiKey - конструктор.
func NewDigiKey(cfg *Config, client *http.Client) (*DigiKeyAdapter, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("vendor %q: client_id and client_secret are required", cfg.ID)
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultDigiKeyURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultDigiKeyTokenURL
	}
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	site, currency := cfg.Locale, cfg.Currency
	if site == "" {
		site = "US"
	}
	if currency == "" {
		currency = "USD"
	}
	return &DigiKeyAdapter{
		id:       cfg.ID,
		baseURL:  strings.TrimRight(base, "/"),
		clientID: cfg.ClientID,
		site:     site,
		currency: currency,
		client:   client,
		creds:    newOAuthCredentials(cfg.ID, cfg.ClientID, cfg.ClientSecret, tokenURL, client),
		now:      time.Now,
	}, nil
}

func (a *DigiKeyAdapter) ID() domain.VendorID { return a.id }

// EnsureAuthenticated — обновляет токен, если он отсутствует или скоро истечёт.
func (a *DigiKeyAdapter) EnsureAuthenticated(ctx context.Context) error {
	_, err := a.creds.Token(ctx)
	return err
}

func (a *DigiKeyAdapter) SearchPart(ctx context.Context, q domain.PartQuery) (*domain.RawResult, error) {
	return a.searchKeyword(ctx, partSearchTerm(q))
}

func (a *DigiKeyAdapter) FetchDatasheet(ctx context.Context, q domain.DatasheetQuery) (*domain.RawResult, error) {
	return a.searchKeyword(ctx, datasheetSearchTerm(q))
}

func (a *DigiKeyAdapter) searchKeyword(ctx context.Context, keywords string) (*domain.RawResult, error) {
	payload, err := json.Marshal(map[string]any{
		"Keywords": keywords,
		"Limit":    50,
		"Offset":   0,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal digikey request: %w", err)
	}

	// 401 - инвалидируем токен и повторяем ровно один раз
	for attempt := 0; ; attempt++ {
		token, err := a.creds.Token(ctx)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/products/v4/search/keyword", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build digikey request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-DIGIKEY-Client-Id", a.clientID)
		req.Header.Set("X-DIGIKEY-Locale-Site", a.site)
		req.Header.Set("X-DIGIKEY-Locale-Currency", a.currency)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		body, err := do(ctx, a.client, a.id, req)
		if errors.Is(err, errUnauthorized) {
			a.creds.Invalidate(token)
			if attempt == 0 {
				continue
			}
			return nil, domain.AuthError(a.id, fmt.Errorf("rejected after token refresh: %w", err))
		}
		if err != nil {
			return nil, err
		}
		if body == nil {
			return a.raw(nil), nil
		}

		var resp DigiKeySearchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, domain.Malformed(a.id, err)
		}
		if resp.Products == nil {
			// тело без Products - это конверт ошибки DigiKey
			var apiErr digiKeyErrorResponse
			if json.Unmarshal(body, &apiErr) == nil && apiErr.ErrorMessage != "" {
				return nil, domain.Malformed(a.id, fmt.Errorf("%d %s", apiErr.StatusCode, apiErr.ErrorMessage))
			}
		}
		return a.raw(body), nil
	}
}

func (a *DigiKeyAdapter) raw(body []byte) *domain.RawResult {
	return &domain.RawResult{Vendor: a.id, Body: body, ContentType: "application/json", ReceivedAt: a.now().UTC()}
}

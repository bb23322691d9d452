package provider

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenSkew — токен считается истёкшим заранее, чтобы не уйти к вендору с протухшим.
const tokenSkew = 30 * time.Second

// oauthCredentials — CredentialState одного адаптера.
// Валидный токен читается под RLock; обновление под Lock с повторной проверкой,
// поэтому параллельные запросы не устраивают гонку обновлений.
type oauthCredentials struct {
	vendor domain.VendorID
	cfg    clientcredentials.Config
	client *http.Client
	now    func() time.Time

	mu    sync.RWMutex
	state domain.CredentialState
}

func newOAuthCredentials(vendor domain.VendorID, clientID, secret, tokenURL string, client *http.Client) *oauthCredentials {
	return &oauthCredentials{
		vendor: vendor,
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: secret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		client: client,
		now:    time.Now,
	}
}

// Token — действующий access token, при необходимости обновлённый.
func (c *oauthCredentials) Token(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.state.Valid(c.now(), tokenSkew) {
		t := c.state.AccessToken
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Valid(c.now(), tokenSkew) {
		return c.state.AccessToken, nil
	}
	return c.refreshLocked(ctx)
}

// Invalidate — сбросить токен, если он всё ещё тот, что отверг вендор.
// Токен, уже обновлённый другим запросом, не трогаем.
func (c *oauthCredentials) Invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.AccessToken == token {
		c.state = domain.CredentialState{}
	}
}

// State — копия текущего состояния (диагностика, тесты).
func (c *oauthCredentials) State() domain.CredentialState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *oauthCredentials) refreshLocked(ctx context.Context) (string, error) {
	if c.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	}
	tok, err := c.cfg.Token(ctx)
	if err != nil {
		return "", c.mapTokenError(err)
	}
	if tok.AccessToken == "" {
		return "", domain.Malformed(c.vendor, errors.New("token endpoint returned empty access token"))
	}
	c.state = domain.CredentialState{
		AccessToken:  tok.AccessToken,
		ExpiresAt:    tok.Expiry,
		RefreshToken: tok.RefreshToken,
	}
	return tok.AccessToken, nil
}

// mapTokenError — отказ эндпоинта токенов (4xx) - ошибка авторизации;
// сеть, 5xx и 429 - временная недоступность вендора;
// ответ 2xx, который не разобрать (нет access_token, битый JSON) - malformed.
func (c *oauthCredentials) mapTokenError(err error) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		var (
			ue *url.Error
			ne net.Error
		)
		if errors.As(err, &ue) || errors.As(err, &ne) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Unavailable(c.vendor, err)
		}
		return domain.Malformed(c.vendor, err)
	}
	if re.Response == nil {
		return domain.AuthError(c.vendor, err)
	}
	switch code := re.Response.StatusCode; {
	case code == http.StatusTooManyRequests:
		return domain.RateLimited(c.vendor, parseRetryAfter(re.Response.Header.Get("Retry-After"), c.now()), err)
	case code >= 500:
		return domain.Unavailable(c.vendor, err)
	default:
		return domain.AuthError(c.vendor, err)
	}
}

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodySize — предел чтения ответа вендора.
const maxBodySize = 8 << 20

// errUnauthorized — внутренний сигнал 401 для OAuth2-адаптеров (наружу не выходит).
var errUnauthorized = errors.New("unauthorized")

// NewHTTPClient — общий HTTP-клиент для вендоров с трассировкой (otelhttp).
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// do — выполнить запрос и перевести HTTP-уровень в таксономию.
// 401 возвращается как errUnauthorized, решение принимает адаптер.
func do(ctx context.Context, client *http.Client, vendor domain.VendorID, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, domain.Unavailable(vendor, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return nil, domain.Unavailable(vendor, fmt.Errorf("read body: %w", readErr))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		// "ничего не найдено" - пустой результат, а не сбой
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, domain.AuthError(vendor, statusError(resp, body))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.RateLimited(vendor, parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()), statusError(resp, body))
	case resp.StatusCode >= 500:
		e := domain.NewVendorError(vendor, domain.ErrVendorUnavailable, statusError(resp, body))
		e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return nil, e
	default:
		return nil, domain.Malformed(vendor, statusError(resp, body))
	}
}

func statusError(resp *http.Response, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 256 {
		snippet = snippet[:256]
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode, snippet)
}

// parseRetryAfter — секунды или HTTP-дата; 0 если заголовка нет или он некорректен.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// authFailed — 401 у API-key адаптера (обновлять нечего).
func authFailed(vendor domain.VendorID, err error) error {
	if errors.Is(err, errUnauthorized) {
		return domain.AuthError(vendor, err)
	}
	return err
}

// datasheetSearchTerm — по URL даташита строим поисковый запрос:
// имя файла без расширения плюс ключевые слова.
func datasheetSearchTerm(q domain.DatasheetQuery) string {
	u := q.URL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	name := u[strings.LastIndex(u, "/")+1:]
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	terms := append([]string{name}, q.Keywords...)
	return strings.TrimSpace(strings.Join(terms, " "))
}

// partSearchTerm — партномер плюс ключевые слова.
func partSearchTerm(q domain.PartQuery) string {
	terms := append([]string{q.PartNumber}, q.Keywords...)
	return strings.TrimSpace(strings.Join(terms, " "))
}

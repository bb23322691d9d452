package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports/mocks"
	rest "github.com/Gunvolt24/partswarm/internal/transport/http"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func serve(t *testing.T, h *rest.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := rest.NewRouter(h, "")
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPart_Found(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)

	want := []domain.CanonicalPart{{PartNumber: "LM358N", Vendor: "mouser", Manufacturer: "TI"}}
	svc.EXPECT().LookupPart(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, q domain.PartQuery) ([]domain.CanonicalPart, error) {
			if q.PartNumber != "lm358n" {
				t.Errorf("part number: %q", q.PartNumber)
			}
			if len(q.Keywords) != 2 || q.Keywords[0] != "opamp" || q.Keywords[1] != "dual" {
				t.Errorf("keywords: %v", q.Keywords)
			}
			if len(q.Vendors) != 1 || q.Vendors[0] != "mouser" {
				t.Errorf("vendors: %v", q.Vendors)
			}
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("lookup must run with a deadline")
			}
			return want, nil
		})

	w := serve(t, rest.NewHandler(svc, nil, noopLogger{}, time.Second), http.MethodGet,
		"/api/v1/parts/lm358n?keywords=opamp,dual&vendors=mouser", "")

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID header must be set")
	}
	var got []domain.CanonicalPart
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].PartNumber != "LM358N" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestGetPart_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"invalid query", domain.ErrInvalidQuery, http.StatusBadRequest, "invalid query"},
		{"all failed", &domain.AllProvidersFailedError{Failures: []domain.VendorFailure{
			{Vendor: "mouser", Err: domain.AuthError("mouser", errors.New("secret-detail"))},
		}}, http.StatusNotFound, `{"error":"no result found"}`},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "timed out"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockLookupService(ctrl)
			svc.EXPECT().LookupPart(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := serve(t, rest.NewHandler(svc, nil, noopLogger{}, time.Second), http.MethodGet, "/api/v1/parts/X1", "")
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d, body=%s", tt.wantCode, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Fatalf("body %q must contain %q", w.Body.String(), tt.wantBody)
			}
			if strings.Contains(w.Body.String(), "secret-detail") {
				t.Fatalf("vendor diagnostics must not leak: %s", w.Body.String())
			}
		})
	}
}

func TestGetPart_TimeoutFromQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)

	svc.EXPECT().LookupPart(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.PartQuery) ([]domain.CanonicalPart, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	start := time.Now()
	w := serve(t, rest.NewHandler(svc, nil, noopLogger{}, 10*time.Second), http.MethodGet, "/api/v1/parts/SLOW?timeout_ms=100", "")
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("want 504, got %d", w.Code)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("timeout_ms was not applied")
	}
}

func TestGetDatasheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)

	svc.EXPECT().LookupDatasheet(gomock.Any(), domain.DatasheetQuery{URL: "https://www.ti.com/lit/ds/lm358.pdf"}).
		Return(domain.CanonicalPart{PartNumber: "LM358N", DatasheetURL: "https://www.ti.com/lit/ds/lm358.pdf"}, nil)

	w := serve(t, rest.NewHandler(svc, nil, noopLogger{}, 0), http.MethodGet,
		"/api/v1/datasheet?url=https%3A%2F%2Fwww.ti.com%2Flit%2Fds%2Flm358.pdf", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got domain.CanonicalPart
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || got.PartNumber != "LM358N" {
		t.Fatalf("unexpected result: %+v err=%v", got, err)
	}
}

func TestListVendors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().Vendors().Return([]domain.VendorStatus{{Vendor: "digikey", Priority: 1, Breaker: "open"}})

	w := serve(t, rest.NewHandler(svc, nil, noopLogger{}, 0), http.MethodGet, "/api/v1/vendors", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"breaker":"open"`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestPeerQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	peers := mocks.NewMockPeerService(ctrl)

	entry := domain.CacheEntry{Fingerprint: "abc", Source: domain.SourceLocal}
	peers.EXPECT().Answer(gomock.Any(), domain.PeerRequest{Fingerprint: "abc", QueryType: domain.QueryTypePart}).
		Return(domain.PeerResponse{Found: true, Entry: &entry})

	h := rest.NewHandler(mocks.NewMockLookupService(ctrl), peers, noopLogger{}, 0)
	w := serve(t, h, http.MethodPost, "/swarm/v1/query", `{"fingerprint":"abc","query_type":"part"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var resp domain.PeerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp.Found || resp.Entry.Fingerprint != "abc" {
		t.Fatalf("unexpected response %+v err=%v", resp, err)
	}

	w = serve(t, h, http.MethodPost, "/swarm/v1/query", `{"query_type":"part"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 without fingerprint, got %d", w.Code)
	}
}

func TestPeerPublish(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"accepted", nil, http.StatusAccepted},
		{"rejected", domain.ErrInvalidEntry, http.StatusBadRequest},
		{"store down", domain.ErrCacheUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			peers := mocks.NewMockPeerService(ctrl)
			peers.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(tt.err)

			h := rest.NewHandler(mocks.NewMockLookupService(ctrl), peers, noopLogger{}, 0)
			w := serve(t, h, http.MethodPost, "/swarm/v1/publish", `{"fingerprint":"abc","source":"local"}`)
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestPeerRoutesDisabledWithoutPeerService(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := rest.NewHandler(mocks.NewMockLookupService(ctrl), nil, noopLogger{}, 0)

	w := serve(t, h, http.MethodPost, "/swarm/v1/query", `{"fingerprint":"abc"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestNoRoute_404(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := rest.NewHandler(mocks.NewMockLookupService(ctrl), nil, noopLogger{}, 0)

	w := serve(t, h, http.MethodGet, "/no-such-route", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestMethodNotAllowed_405(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := rest.NewHandler(mocks.NewMockLookupService(ctrl), nil, noopLogger{}, 0)

	w := serve(t, h, http.MethodPost, "/api/v1/parts/123", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := rest.NewHandler(mocks.NewMockLookupService(ctrl), nil, noopLogger{}, 0)

	w := serve(t, h, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("unexpected ping response %d %q", w.Code, w.Body.String())
	}
}

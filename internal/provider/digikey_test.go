package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type digiKeyFake struct {
	tokenCalls  atomic.Int32
	searchCalls atomic.Int32
	tokenStatus int
	// tokenBody — тело успешного ответа эндпоинта токенов вместо стандартного
	tokenBody string
	// unauthorizedFirst — сколько первых поисковых запросов отвергнуть с 401
	unauthorizedFirst int32
	lastBearer        atomic.Value
}

func (f *digiKeyFake) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		n := f.tokenCalls.Add(1)
		if f.tokenStatus != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if f.tokenBody != "" {
			_, _ = w.Write([]byte(f.tokenBody))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-` + string(rune('0'+n)) + `","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/products/v4/search/keyword", func(w http.ResponseWriter, r *http.Request) {
		n := f.searchCalls.Add(1)
		f.lastBearer.Store(r.Header.Get("Authorization"))
		if n <= f.unauthorizedFirst {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Products":[{"ManufacturerProductNumber":"LM358N","Manufacturer":{"Name":"Texas Instruments"}}],"ProductsCount":1}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestDigiKey(t *testing.T, srv *httptest.Server) *DigiKeyAdapter {
	t.Helper()
	a, err := NewDigiKey(&Config{
		ID:           "digikey",
		Kind:         KindDigiKey,
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/v1/oauth2/token",
		ClientID:     "id",
		ClientSecret: "secret",
	}, srv.Client())
	require.NoError(t, err)
	return a
}

// Просроченный токен обновляется один раз до поиска, поиск не повторяется.
func TestDigiKey_RefreshesExpiredTokenBeforeSearch(t *testing.T) {
	f := &digiKeyFake{}
	a := newTestDigiKey(t, f.server(t))
	a.creds.state = domain.CredentialState{AccessToken: "stale", ExpiresAt: time.Now().Add(-time.Minute)}

	ctx := context.Background()
	require.NoError(t, a.EnsureAuthenticated(ctx))
	raw, err := a.SearchPart(ctx, domain.PartQuery{PartNumber: "LM358N"})
	require.NoError(t, err)
	require.NotEmpty(t, raw.Body)
	require.Equal(t, domain.VendorID("digikey"), raw.Vendor)

	require.EqualValues(t, 1, f.tokenCalls.Load())
	require.EqualValues(t, 1, f.searchCalls.Load())
	require.Equal(t, "Bearer tok-1", f.lastBearer.Load())
	state := a.creds.State()
	require.True(t, state.Valid(time.Now(), tokenSkew))
}

func TestDigiKey_ConcurrentCallersShareOneTokenExchange(t *testing.T) {
	f := &digiKeyFake{}
	a := newTestDigiKey(t, f.server(t))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.EnsureAuthenticated(context.Background()))
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, f.tokenCalls.Load())
}

func TestDigiKey_UnauthorizedInvalidatesAndRetriesOnce(t *testing.T) {
	f := &digiKeyFake{unauthorizedFirst: 1}
	a := newTestDigiKey(t, f.server(t))

	_, err := a.SearchPart(context.Background(), domain.PartQuery{PartNumber: "LM358N"})
	require.NoError(t, err)
	require.EqualValues(t, 2, f.tokenCalls.Load())
	require.EqualValues(t, 2, f.searchCalls.Load())
	require.Equal(t, "Bearer tok-2", f.lastBearer.Load())
}

func TestDigiKey_RepeatedUnauthorizedIsAuthError(t *testing.T) {
	f := &digiKeyFake{unauthorizedFirst: 10}
	a := newTestDigiKey(t, f.server(t))

	_, err := a.SearchPart(context.Background(), domain.PartQuery{PartNumber: "LM358N"})
	require.ErrorIs(t, err, domain.ErrVendorAuth)
	require.False(t, domain.IsTransient(err))
	require.EqualValues(t, 2, f.searchCalls.Load())
}

func TestDigiKey_TokenEndpointFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"rejected credentials", http.StatusUnauthorized, domain.ErrVendorAuth},
		{"bad request", http.StatusBadRequest, domain.ErrVendorAuth},
		{"token server down", http.StatusBadGateway, domain.ErrVendorUnavailable},
		{"throttled", http.StatusTooManyRequests, domain.ErrVendorRateLimited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &digiKeyFake{tokenStatus: tc.status}
			a := newTestDigiKey(t, f.server(t))

			err := a.EnsureAuthenticated(context.Background())
			require.ErrorIs(t, err, tc.want)
			require.Zero(t, f.searchCalls.Load())
		})
	}
}

func TestDigiKey_UnparsableTokenResponseIsMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"broken json", `{"access_token":`},
		{"no access token", `{"token_type":"bearer","expires_in":3600}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &digiKeyFake{tokenBody: tc.body}
			a := newTestDigiKey(t, f.server(t))

			err := a.EnsureAuthenticated(context.Background())
			require.ErrorIs(t, err, domain.ErrVendorMalformedResponse)
			require.NotErrorIs(t, err, domain.ErrVendorUnavailable)
			require.Zero(t, f.searchCalls.Load())
		})
	}
}

func TestDigiKey_TokenEndpointUnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	a := newTestDigiKey(t, srv)
	srv.Close()

	err := a.EnsureAuthenticated(context.Background())
	require.ErrorIs(t, err, domain.ErrVendorUnavailable)
	require.True(t, domain.IsTransient(err))
}

func TestNewDigiKey_RequiresCredentials(t *testing.T) {
	_, err := NewDigiKey(&Config{ID: "digikey"}, nil)
	require.Error(t, err)
}

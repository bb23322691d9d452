package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/policy"
	"github.com/Gunvolt24/partswarm/internal/provider"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// first — вендоры по очереди до первого непустого результата.
func (s *LookupService) first(
	ctx context.Context,
	entries []provider.Entry,
	call vendorCall,
) ([]domain.CanonicalPart, domain.VendorID, []domain.VendorFailure) {
	var failures []domain.VendorFailure
	for _, e := range entries {
		id := e.Provider.ID()
		if ctx.Err() != nil {
			failures = append(failures, domain.VendorFailure{Vendor: id, Err: ctx.Err()})
			continue
		}
		parts, err := s.callVendor(ctx, e, call)
		if err != nil {
			failures = append(failures, domain.VendorFailure{Vendor: id, Err: err})
			continue
		}
		return parts, id, failures
	}
	return nil, "", failures
}

// aggregate — все вендоры параллельно; объединение в порядке приоритета без дублей (PartNumber, Vendor).
func (s *LookupService) aggregate(
	ctx context.Context,
	entries []provider.Entry,
	call vendorCall,
) ([]domain.CanonicalPart, domain.VendorID, []domain.VendorFailure) {
	results := make([][]domain.CanonicalPart, len(entries))
	errs := make([]error, len(entries))

	var g errgroup.Group
	for i := range entries {
		g.Go(func() error {
			results[i], errs[i] = s.callVendor(ctx, entries[i], call)
			return nil
		})
	}
	_ = g.Wait()

	var (
		merged   []domain.CanonicalPart
		vendor   domain.VendorID
		failures []domain.VendorFailure
	)
	seen := make(map[string]struct{})
	for i, e := range entries {
		if errs[i] != nil {
			failures = append(failures, domain.VendorFailure{Vendor: e.Provider.ID(), Err: errs[i]})
			continue
		}
		if vendor == "" {
			vendor = e.Provider.ID()
		}
		for _, p := range results[i] {
			if _, dup := seen[p.Key()]; dup {
				continue
			}
			seen[p.Key()] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged, vendor, failures
}

// callVendor — один вендор: breaker, аутентификация и операция под Retrier, нормализация.
// Пустой результат - отказ ErrNoResults (для диагностики), breaker его не учитывает.
func (s *LookupService) callVendor(ctx context.Context, e provider.Entry, call vendorCall) ([]domain.CanonicalPart, error) {
	p := e.Provider
	id := p.ID()
	br := s.breakers.For(id)
	if !br.Allow() {
		metrics.VendorCalls.WithLabelValues(string(id), "circuit_open").Inc()
		return nil, domain.NewVendorError(id, domain.ErrCircuitOpen, nil)
	}

	ctx, span := s.tracer.Start(ctx, "vendor.call", trace.WithAttributes(attribute.String("vendor", string(id))))
	defer span.End()
	start := time.Now()

	var parts []domain.CanonicalPart
	attempt := func(ctx context.Context) error {
		if err := p.EnsureAuthenticated(ctx); err != nil {
			return err
		}
		raw, err := call(ctx, p)
		if err != nil {
			return err
		}
		parts, err = s.codec.Normalize(id, raw)
		return err
	}
	onAttempt := func(err error) bool {
		if ctx.Err() != nil {
			// отмена вызывающим ничего не говорит о здоровье вендора
			br.Release()
			return false
		}
		br.Record(err)
		metrics.VendorCalls.WithLabelValues(string(id), outcome(err)).Inc()
		if err != nil && domain.IsTransient(err) {
			return br.Allow()
		}
		return true
	}

	err := s.retrier(id).Do(ctx, attempt, onAttempt)
	metrics.VendorLatency.WithLabelValues(string(id)).Observe(time.Since(start).Seconds())
	if err == nil && len(parts) == 0 {
		metrics.VendorCalls.WithLabelValues(string(id), "empty").Inc()
		err = domain.NewVendorError(id, domain.ErrNoResults, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("parts", len(parts)))
	return parts, nil
}

func (s *LookupService) retrier(id domain.VendorID) *policy.Retrier {
	if r, ok := s.retriers[id]; ok {
		return r
	}
	return policy.NewRetrier(policy.RetryPolicy{})
}

// outcome — метка метрики по виду ошибки.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrVendorUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrVendorRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrVendorAuth):
		return "auth"
	case errors.Is(err, domain.ErrVendorMalformedResponse):
		return "malformed"
	case errors.Is(err, domain.ErrNormalization):
		return "normalization"
	default:
		return "error"
	}
}

// pickDatasheet — кандидат, чей DatasheetURL совпадает с запрошенным (без учёта схемы и регистра хоста).
func pickDatasheet(parts []domain.CanonicalPart, want string) domain.CanonicalPart {
	key := datasheetKey(want)
	for _, p := range parts {
		if p.DatasheetURL != "" && datasheetKey(p.DatasheetURL) == key {
			return p
		}
	}
	return parts[0]
}

func datasheetKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return strings.ToLower(u.Host) + strings.TrimSuffix(u.EscapedPath(), "/") + "?" + u.RawQuery
}

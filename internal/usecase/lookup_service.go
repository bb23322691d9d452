// Пакет usecase - координатор поиска: Swarm-кэш, затем вендоры по приоритету.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/policy"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/internal/provider"
	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// Проверка, что LookupService удовлетворяет интерфейсу.
var _ ports.LookupService = (*LookupService)(nil)

// Mode — стратегия опроса вендоров при промахе кэша.
type Mode string

const (
	// ModeFirst — вендоры по очереди, до первого непустого результата.
	ModeFirst Mode = "first"
	// ModeAggregate — все подходящие вендоры параллельно, результаты объединяются.
	ModeAggregate Mode = "aggregate"
)

// ParseMode — пустое значение означает ModeFirst.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFirst:
		return ModeFirst, nil
	case ModeAggregate:
		return ModeAggregate, nil
	default:
		return "", fmt.Errorf("unknown lookup mode %q", s)
	}
}

// vendorCall — операция конкретного адаптера (поиск партномера или даташита).
type vendorCall func(ctx context.Context, p ports.Provider) (*domain.RawResult, error)

// LookupService — прикладная логика поиска (без знаний о транспорте).
type LookupService struct {
	registry  *provider.Registry
	codec     ports.PartCodec
	cache     ports.SwarmCache
	validator ports.QueryValidator
	log       ports.Logger
	mode      Mode

	breakers *policy.Breakers
	retriers map[domain.VendorID]*policy.Retrier
	flights  flightGroup
	tracer   trace.Tracer
}

// NewLookupService — DI-конструктор. validator может быть nil (тогда только доменные проверки).
func NewLookupService(
	registry *provider.Registry,
	codec ports.PartCodec,
	cache ports.SwarmCache,
	validator ports.QueryValidator,
	log ports.Logger,
	mode Mode,
) *LookupService {
	if mode == "" {
		mode = ModeFirst
	}
	s := &LookupService{
		registry:  registry,
		codec:     codec,
		cache:     cache,
		validator: validator,
		log:       log,
		mode:      mode,
		retriers:  make(map[domain.VendorID]*policy.Retrier, registry.Len()),
		tracer:    otel.Tracer("github.com/Gunvolt24/partswarm/internal/usecase"),
	}
	s.breakers = policy.NewBreakers(policy.BreakerConfig{}, s.onBreakerChange)
	for _, e := range registry.Ordered() {
		id := e.Provider.ID()
		s.breakers.Configure(id, e.Breaker)
		s.retriers[id] = policy.NewRetrier(e.Retry)
		metrics.BreakerState.WithLabelValues(string(id)).Set(float64(policy.StateClosed))
	}
	return s
}

// LookupPart — поиск по партномеру: кэш Swarm, при промахе - вендоры с публикацией результата.
func (s *LookupService) LookupPart(ctx context.Context, q domain.PartQuery) ([]domain.CanonicalPart, error) {
	ctx, span := s.tracer.Start(ctx, "LookupPart", trace.WithAttributes(attribute.String("part_number", q.PartNumber)))
	defer span.End()

	if err := s.validatePart(ctx, &q); err != nil {
		metrics.LookupsTotal.WithLabelValues(string(domain.QueryTypePart), "invalid").Inc()
		return nil, err
	}
	q = q.Normalize()
	fp := domain.FingerprintPart(q)
	span.SetAttributes(attribute.String("fingerprint", string(fp)))
	ctx = ctxmeta.WithFingerprint(ctx, string(fp))

	call := func(ctx context.Context, p ports.Provider) (*domain.RawResult, error) {
		return p.SearchPart(ctx, q)
	}
	parts, err := s.lookup(ctx, fp, domain.QueryTypePart, call, q.WantsVendor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return parts, nil
}

// LookupDatasheet — поиск даташита по URL; возвращает кандидата с совпадающим DatasheetURL
// (если такого нет - первого кандидата).
func (s *LookupService) LookupDatasheet(ctx context.Context, q domain.DatasheetQuery) (domain.CanonicalPart, error) {
	ctx, span := s.tracer.Start(ctx, "LookupDatasheet", trace.WithAttributes(attribute.String("url", q.URL)))
	defer span.End()

	if err := s.validateDatasheet(ctx, &q); err != nil {
		metrics.LookupsTotal.WithLabelValues(string(domain.QueryTypeDatasheet), "invalid").Inc()
		return domain.CanonicalPart{}, err
	}
	q = q.Normalize()
	fp := domain.FingerprintDatasheet(q)
	span.SetAttributes(attribute.String("fingerprint", string(fp)))
	ctx = ctxmeta.WithFingerprint(ctx, string(fp))

	call := func(ctx context.Context, p ports.Provider) (*domain.RawResult, error) {
		return p.FetchDatasheet(ctx, q)
	}
	parts, err := s.lookup(ctx, fp, domain.QueryTypeDatasheet, call, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.CanonicalPart{}, err
	}
	return pickDatasheet(parts, q.URL), nil
}

// Vendors — приоритет и состояние breaker'а каждого вендора.
func (s *LookupService) Vendors() []domain.VendorStatus {
	entries := s.registry.Ordered()
	out := make([]domain.VendorStatus, 0, len(entries))
	for _, e := range entries {
		id := e.Provider.ID()
		out = append(out, domain.VendorStatus{
			Vendor:   id,
			Priority: e.Priority,
			Breaker:  s.breakers.For(id).State().String(),
		})
	}
	return out
}

// lookup — объединение одинаковых запросов и учёт результата в метриках.
func (s *LookupService) lookup(
	ctx context.Context,
	fp domain.Fingerprint,
	qt domain.QueryType,
	call vendorCall,
	wants func(domain.VendorID) bool,
) ([]domain.CanonicalPart, error) {
	start := time.Now()
	fromCache := false

	parts, shared, err := s.flights.Do(ctx, fp, func(fctx context.Context) ([]domain.CanonicalPart, error) {
		parts, hit, err := s.resolve(fctx, fp, qt, call, wants)
		fromCache = hit
		return parts, err
	})

	switch {
	case err != nil:
		metrics.LookupsTotal.WithLabelValues(string(qt), "failed").Inc()
		s.log.Warnf(ctx, "lookup failed type=%s fp=%s shared=%t took=%s err=%v", qt, fp, shared, time.Since(start), err)
	case fromCache && !shared:
		metrics.LookupsTotal.WithLabelValues(string(qt), "cache").Inc()
	default:
		metrics.LookupsTotal.WithLabelValues(string(qt), "fetched").Inc()
		s.log.Infof(ctx, "lookup type=%s fp=%s parts=%d shared=%t took=%s", qt, fp, len(parts), shared, time.Since(start))
	}
	return parts, err
}

// resolve — выполняется один раз на fingerprint: кэш Swarm, затем вендоры, затем публикация.
func (s *LookupService) resolve(
	ctx context.Context,
	fp domain.Fingerprint,
	qt domain.QueryType,
	call vendorCall,
	wants func(domain.VendorID) bool,
) ([]domain.CanonicalPart, bool, error) {
	if entry, ok := s.cache.Get(ctx, fp, qt); ok {
		parts, err := s.codec.Decode(entry.Envelope)
		if err == nil {
			s.log.Infof(ctx, "swarm hit fp=%s source=%s parts=%d", fp, entry.Source, len(parts))
			return parts, true, nil
		}
		// битый конверт - считаем промахом и перезапрашиваем
		s.log.Warnf(ctx, "swarm entry undecodable fp=%s: %v", fp, err)
	}

	eligible := s.eligible(wants)
	var (
		parts    []domain.CanonicalPart
		vendor   domain.VendorID
		failures []domain.VendorFailure
	)
	if s.mode == ModeAggregate {
		parts, vendor, failures = s.aggregate(ctx, eligible, call)
	} else {
		parts, vendor, failures = s.first(ctx, eligible, call)
	}
	if len(parts) == 0 {
		return nil, false, &domain.AllProvidersFailedError{Failures: failures}
	}
	for _, f := range failures {
		s.log.Infof(ctx, "vendor skipped fp=%s vendor=%s: %v", fp, f.Vendor, f.Err)
	}

	s.publish(ctx, fp, vendor, parts)
	return parts, false, nil
}

// publish — конверт в Swarm-кэш; сбой публикации не влияет на ответ.
func (s *LookupService) publish(ctx context.Context, fp domain.Fingerprint, vendor domain.VendorID, parts []domain.CanonicalPart) {
	env, err := s.codec.Encode(vendor, parts)
	if err != nil {
		s.log.Errorf(ctx, "encode envelope fp=%s vendor=%s: %v", fp, vendor, err)
		return
	}
	if err := s.cache.Put(ctx, fp, env, domain.SourceLocal); err != nil {
		s.log.Warnf(ctx, "swarm put fp=%s: %v", fp, err)
	}
}

// eligible — вендоры в порядке приоритета, отфильтрованные запросом.
func (s *LookupService) eligible(wants func(domain.VendorID) bool) []provider.Entry {
	all := s.registry.Ordered()
	if wants == nil {
		return all
	}
	out := all[:0]
	for _, e := range all {
		if wants(e.Provider.ID()) {
			out = append(out, e)
		}
	}
	return out
}

func (s *LookupService) validatePart(ctx context.Context, q *domain.PartQuery) error {
	if s.validator != nil {
		return s.validator.ValidatePart(ctx, q)
	}
	return q.Validate()
}

func (s *LookupService) validateDatasheet(ctx context.Context, q *domain.DatasheetQuery) error {
	if s.validator != nil {
		return s.validator.ValidateDatasheet(ctx, q)
	}
	return q.Validate()
}

func (s *LookupService) onBreakerChange(vendor domain.VendorID, from, to policy.State) {
	metrics.BreakerState.WithLabelValues(string(vendor)).Set(float64(to))
	s.log.Warnf(context.Background(), "breaker vendor=%s %s -> %s", vendor, from, to)
}

// IsTimeout — вызывающий не дождался результата.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

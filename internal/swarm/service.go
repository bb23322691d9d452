// Пакет swarm - кэш результатов, разделяемый между узлами.
// Порядок поиска: локальный LRU, постоянное хранилище, пиры.
package swarm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Проверка, что Service удовлетворяет интерфейсам.
var (
	_ ports.SwarmCache  = (*Service)(nil)
	_ ports.PeerService = (*Service)(nil)
)

// Options — параметры узла Swarm.
type Options struct {
	NodeID         string
	TTL            time.Duration
	PeerTimeout    time.Duration
	PublishTimeout time.Duration
}

func (o *Options) withDefaults() {
	if o.TTL <= 0 {
		o.TTL = 24 * time.Hour
	}
	if o.PeerTimeout <= 0 {
		o.PeerTimeout = 750 * time.Millisecond
	}
	if o.PublishTimeout <= 0 {
		o.PublishTimeout = 5 * time.Second
	}
}

// Service — реализация SwarmCache и PeerService.
// store и publisher необязательны (nil - отключено).
type Service struct {
	local     ports.EntryCache
	store     ports.EntryStore
	peers     []ports.PeerClient
	publisher ports.PeerPublisher
	log       ports.Logger
	opts      Options
	now       func() time.Time

	bg sync.WaitGroup
}

// NewService — DI-конструктор.
func NewService(
	local ports.EntryCache,
	store ports.EntryStore,
	peers []ports.PeerClient,
	publisher ports.PeerPublisher,
	log ports.Logger,
	opts Options,
) *Service {
	opts.withDefaults()
	return &Service{
		local:     local,
		store:     store,
		peers:     peers,
		publisher: publisher,
		log:       log,
		opts:      opts,
		now:       time.Now,
	}
}

// Get — локальный кэш, затем хранилище, затем пиры. Ошибки хранилища не выходят наружу.
func (s *Service) Get(ctx context.Context, fp domain.Fingerprint, qt domain.QueryType) (domain.CacheEntry, bool) {
	if e, ok := s.local.Get(ctx, fp); ok {
		return e, true
	}
	if e, ok := s.fromStore(ctx, fp); ok {
		s.local.Insert(ctx, e)
		return e, true
	}
	return s.QueryPeers(ctx, fp, qt)
}

// Put — запись создаётся здесь (CreatedAt/ExpiresAt), вставляется локально и в хранилище;
// локальные записи рассылаются пирам в фоне.
func (s *Service) Put(ctx context.Context, fp domain.Fingerprint, env domain.Envelope, source domain.SourceTag) error {
	if fp == "" {
		return errors.New("fingerprint is required")
	}
	now := s.now().UTC()
	e := domain.CacheEntry{
		Fingerprint: fp,
		Envelope:    env.Clone(),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.opts.TTL),
		Source:      source,
	}
	if !s.local.Insert(ctx, e) {
		s.log.Infof(ctx, "swarm: newer entry already cached fp=%s", fp)
		return nil
	}
	s.toStore(ctx, e)

	if source == domain.SourceLocal && s.publisher != nil {
		s.broadcast(ctx, e)
	}
	return nil
}

// QueryPeers — параллельный опрос всех пиров с общим таймаутом; первый найденный ответ побеждает,
// остальные запросы отменяются.
func (s *Service) QueryPeers(ctx context.Context, fp domain.Fingerprint, qt domain.QueryType) (domain.CacheEntry, bool) {
	if len(s.peers) == 0 {
		return domain.CacheEntry{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.PeerTimeout)
	defer cancel()

	req := domain.PeerRequest{Fingerprint: fp, QueryType: qt}
	results := make(chan domain.CacheEntry, len(s.peers))
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range s.peers {
		g.Go(func() error {
			resp, err := p.Query(gctx, req)
			if err != nil {
				if gctx.Err() == nil {
					metrics.PeerQueries.WithLabelValues("error").Inc()
					s.log.Warnf(ctx, "swarm: peer query failed peer=%s err=%v", p.Addr(), err)
				}
				return nil
			}
			if !resp.Found || resp.Entry == nil {
				return nil
			}
			e := *resp.Entry
			if e.Fingerprint != fp || e.Expired(s.now()) {
				s.log.Warnf(ctx, "swarm: peer returned unusable entry peer=%s", p.Addr())
				return nil
			}
			results <- e
			cancel()
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	e, ok := <-results
	if !ok {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.PeerQueries.WithLabelValues("timeout").Inc()
		} else {
			metrics.PeerQueries.WithLabelValues("miss").Inc()
		}
		return domain.CacheEntry{}, false
	}

	metrics.PeerQueries.WithLabelValues("hit").Inc()
	e.Source = domain.SourcePeer
	// контекст запроса к пирам уже отменён; локальная вставка от него не зависит
	s.ingest(context.WithoutCancel(ctx), e)
	return e, true
}

// Answer — ответ пиру только из локального кэша и хранилища (без каскада к другим пирам).
func (s *Service) Answer(ctx context.Context, req domain.PeerRequest) domain.PeerResponse {
	e, ok := s.local.Get(ctx, req.Fingerprint)
	if !ok {
		e, ok = s.fromStore(ctx, req.Fingerprint)
	}
	if !ok {
		return domain.PeerResponse{}
	}
	return domain.PeerResponse{Found: true, Entry: &e}
}

// Accept — запись, присланная пиром; помечается как peer, правила замены - как при любой вставке.
func (s *Service) Accept(ctx context.Context, e domain.CacheEntry) error {
	if e.Fingerprint == "" {
		return fmt.Errorf("%w: fingerprint is required", domain.ErrInvalidEntry)
	}
	if e.Expired(s.now()) {
		return fmt.Errorf("%w: already expired", domain.ErrInvalidEntry)
	}
	e.Source = domain.SourcePeer
	s.ingest(ctx, e)
	return nil
}

// Close — дождаться фоновых рассылок.
func (s *Service) Close() {
	s.bg.Wait()
}

func (s *Service) ingest(ctx context.Context, e domain.CacheEntry) {
	if s.local.Insert(ctx, e) {
		s.toStore(ctx, e)
	}
}

func (s *Service) fromStore(ctx context.Context, fp domain.Fingerprint) (domain.CacheEntry, bool) {
	if s.store == nil {
		return domain.CacheEntry{}, false
	}
	e, ok, err := s.store.Get(ctx, fp)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("get").Inc()
		s.log.Warnf(ctx, "swarm: store get failed fp=%s err=%v", fp, err)
		return domain.CacheEntry{}, false
	}
	if !ok || e.Expired(s.now()) {
		return domain.CacheEntry{}, false
	}
	metrics.CacheOps.WithLabelValues("hit", "store").Inc()
	return e, true
}

func (s *Service) toStore(ctx context.Context, e domain.CacheEntry) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(ctx, e); err != nil {
		metrics.StoreErrors.WithLabelValues("put").Inc()
		s.log.Warnf(ctx, "swarm: store put failed fp=%s err=%v", e.Fingerprint, err)
	}
}

// broadcast — best-effort рассылка; не блокирует вызывающего и переживает отмену его контекста.
func (s *Service) broadcast(ctx context.Context, e domain.CacheEntry) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.PublishTimeout)
		defer cancel()
		if err := s.publisher.Publish(pctx, e); err != nil {
			metrics.PeerBroadcasts.WithLabelValues("error").Inc()
			s.log.Warnf(pctx, "swarm: broadcast failed fp=%s err=%v", e.Fingerprint, err)
			return
		}
		metrics.PeerBroadcasts.WithLabelValues("ok").Inc()
	}()
}

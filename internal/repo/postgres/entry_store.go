package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что EntryStore удовлетворяет интерфейсу EntryStore.
var _ ports.EntryStore = (*EntryStore)(nil)

// EntryStore — постоянное хранилище записей Swarm на Postgres (pgxpool).
type EntryStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewEntryStore - конструктор EntryStore. Пул принадлежит хранилищу и закрывается в Close.
func NewEntryStore(pool *pgxpool.Pool) *EntryStore {
	return &EntryStore{pool: pool, now: time.Now}
}

// Get — только неистёкшая запись.
func (s *EntryStore) Get(ctx context.Context, fp domain.Fingerprint) (domain.CacheEntry, bool, error) {
	var (
		e         domain.CacheEntry
		source    string
		vendor    string
		expiresAt *time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT fingerprint, schema_version, vendor_id, encoding, payload, source, created_at, expires_at
		FROM swarm_entries
		WHERE fingerprint = $1 AND (expires_at IS NULL OR expires_at > $2)
	`, string(fp), s.now()).Scan(
		&e.Fingerprint, &e.Envelope.SchemaVersion, &vendor, &e.Envelope.Encoding,
		&e.Envelope.Payload, &source, &e.CreatedAt, &expiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CacheEntry{}, false, nil
	}
	if err != nil {
		return domain.CacheEntry{}, false, fmt.Errorf("%w: select entry: %v", domain.ErrCacheUnavailable, err)
	}
	e.Envelope.VendorID = domain.VendorID(vendor)
	e.Source = domain.SourceTag(source)
	if expiresAt != nil {
		e.ExpiresAt = *expiresAt
	}
	return e, true, nil
}

// Put — upsert по fingerprint; существующая запись с более новым created_at не затирается.
func (s *EntryStore) Put(ctx context.Context, e domain.CacheEntry) error {
	if e.Fingerprint == "" {
		return fmt.Errorf("%w: fingerprint is required", domain.ErrInvalidEntry)
	}
	var expiresAt *time.Time
	if !e.ExpiresAt.IsZero() {
		expiresAt = &e.ExpiresAt
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO swarm_entries (
			fingerprint, schema_version, vendor_id, encoding, payload, source, created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (fingerprint) DO UPDATE SET
			schema_version = EXCLUDED.schema_version,
			vendor_id = EXCLUDED.vendor_id,
			encoding = EXCLUDED.encoding,
			payload = EXCLUDED.payload,
			source = EXCLUDED.source,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
		WHERE swarm_entries.created_at <= EXCLUDED.created_at
	`,
		string(e.Fingerprint), e.Envelope.SchemaVersion, string(e.Envelope.VendorID), e.Envelope.Encoding,
		e.Envelope.Payload, string(e.Source), e.CreatedAt, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("%w: upsert entry: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Sweep — удалить истёкшие записи.
func (s *EntryStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM swarm_entries WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%w: sweep entries: %v", domain.ErrCacheUnavailable, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *EntryStore) Close() error {
	s.pool.Close()
	return nil
}

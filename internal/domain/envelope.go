package domain

import (
	"errors"
	"time"
)

// ErrInvalidEntry — запись кэша непригодна к приёму (нет fingerprint, уже истекла, битый формат).
var ErrInvalidEntry = errors.New("invalid cache entry")

// Encoding-теги содержимого конверта.
const (
	EncodingPartsJSON     = "parts+json"
	EncodingPartsJSONZstd = "parts+json+zstd"
)

// Envelope — сериализованный канонический результат; для кэша это непрозрачный blob.
// Создаётся один раз после нормализации и далее не изменяется.
type Envelope struct {
	SchemaVersion int      `json:"schema_version"`
	VendorID      VendorID `json:"vendor_id"`
	Encoding      string   `json:"encoding"`
	Payload       []byte   `json:"payload"`
}

// Clone — копия с собственным срезом payload.
func (e Envelope) Clone() Envelope {
	c := e
	if e.Payload != nil {
		c.Payload = append([]byte(nil), e.Payload...)
	}
	return c
}

// SourceTag — откуда пришла запись: локальная выборка у вендора или от пира.
type SourceTag string

const (
	SourceLocal SourceTag = "local"
	SourcePeer  SourceTag = "peer"
)

// CacheEntry — запись Swarm-кэша. Не изменяется на месте: замена = новая запись с тем же ключом.
type CacheEntry struct {
	Fingerprint Fingerprint `json:"fingerprint"`
	Envelope    Envelope    `json:"envelope"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
	Source      SourceTag   `json:"source"`
}

// Expired — нулевой ExpiresAt означает "без срока".
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Supersedes — может ли e заменить old: более новый CreatedAt побеждает,
// а локальную запись нельзя вытеснить пировой с более старым CreatedAt.
func (e *CacheEntry) Supersedes(old *CacheEntry) bool {
	if old == nil {
		return true
	}
	if e.Source == SourcePeer && old.Source == SourceLocal && e.CreatedAt.Before(old.CreatedAt) {
		return false
	}
	return !e.CreatedAt.Before(old.CreatedAt)
}

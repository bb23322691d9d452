package ports

import (
	"context"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

// LookupService — входная точка для прикладного слоя.
type LookupService interface {
	LookupPart(ctx context.Context, q domain.PartQuery) ([]domain.CanonicalPart, error)
	LookupDatasheet(ctx context.Context, q domain.DatasheetQuery) (domain.CanonicalPart, error)
	Vendors() []domain.VendorStatus
}

// PeerService — сторона Swarm, отвечающая пирам.
type PeerService interface {
	Answer(ctx context.Context, req domain.PeerRequest) domain.PeerResponse
	Accept(ctx context.Context, entry domain.CacheEntry) error
}

// QueryValidator — проверка входящих запросов до вычисления fingerprint.
// Ошибки оборачивают domain.ErrInvalidQuery.
type QueryValidator interface {
	ValidatePart(ctx context.Context, q *domain.PartQuery) error
	ValidateDatasheet(ctx context.Context, q *domain.DatasheetQuery) error
}

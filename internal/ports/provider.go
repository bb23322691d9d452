package ports

import (
	"context"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

// Provider — адаптер вендора: единый набор возможностей поверх разных протоколов.
// Наружу выходят только ошибки из таксономии domain (ErrVendor*).
type Provider interface {
	ID() domain.VendorID
	SearchPart(ctx context.Context, q domain.PartQuery) (*domain.RawResult, error)
	FetchDatasheet(ctx context.Context, q domain.DatasheetQuery) (*domain.RawResult, error)
	// EnsureAuthenticated — для OAuth2 обновляет токен при необходимости; для API-key - no-op.
	EnsureAuthenticated(ctx context.Context) error
}

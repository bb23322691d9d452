package ports

import "github.com/Gunvolt24/partswarm/internal/domain"

// PartCodec — нормализация сырых ответов и (де)сериализация конвертов.
type PartCodec interface {
	Normalize(vendor domain.VendorID, raw *domain.RawResult) ([]domain.CanonicalPart, error)
	Encode(vendor domain.VendorID, parts []domain.CanonicalPart) (domain.Envelope, error)
	Decode(env domain.Envelope) ([]domain.CanonicalPart, error)
}

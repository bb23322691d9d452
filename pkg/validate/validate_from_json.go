package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
)

// PartQueryFromJSON — строгий разбор и валидация одного запроса.
func PartQueryFromJSON(ctx context.Context, validator ports.QueryValidator, raw []byte) (*domain.PartQuery, error) {
	var q domain.PartQuery
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidQuery, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", domain.ErrInvalidQuery)
	}
	if err := validator.ValidatePart(ctx, &q); err != nil {
		return nil, err
	}
	n := q.Normalize()
	return &n, nil
}

package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/go-playground/validator/v10"
)

// Проверка, что QueryValidator удовлетворяет интерфейсу QueryValidator.
var _ ports.QueryValidator = (*QueryValidator)(nil)

const (
	maxPartNumberLen = 128
	maxKeywords      = 16
	maxKeywordLen    = 64
	maxVendors       = 16
)

// QueryValidator — проверка запросов по struct-тегам (validator/v10) и доменным правилам.
type QueryValidator struct {
	v *validator.Validate
}

// NewQueryValidator — конструктор QueryValidator.
// Возвращает domain.ErrInvalidQuery (с обёрнутой причиной) при любой проблеме.
func NewQueryValidator() *QueryValidator {
	return &QueryValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidatePart — партномер обязателен и ограничен по длине, ключевых слов и вендоров не слишком много.
func (qv *QueryValidator) ValidatePart(_ context.Context, q *domain.PartQuery) error {
	if q == nil {
		return fmt.Errorf("%w: query is nil", domain.ErrInvalidQuery)
	}
	if err := qv.v.Struct(q); err != nil {
		return wrapStructErr(err)
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if n := len(strings.TrimSpace(q.PartNumber)); n > maxPartNumberLen {
		return fmt.Errorf("%w: part_number is too long (%d > %d)", domain.ErrInvalidQuery, n, maxPartNumberLen)
	}
	if err := validateKeywords(q.Keywords); err != nil {
		return err
	}
	if len(q.Vendors) > maxVendors {
		return fmt.Errorf("%w: too many vendors (%d > %d)", domain.ErrInvalidQuery, len(q.Vendors), maxVendors)
	}
	return nil
}

// ValidateDatasheet — абсолютный http(s) URL.
func (qv *QueryValidator) ValidateDatasheet(_ context.Context, q *domain.DatasheetQuery) error {
	if q == nil {
		return fmt.Errorf("%w: query is nil", domain.ErrInvalidQuery)
	}
	if err := qv.v.Struct(q); err != nil {
		return wrapStructErr(err)
	}
	if err := q.Validate(); err != nil {
		return err
	}
	return validateKeywords(q.Keywords)
}

func validateKeywords(kw []string) error {
	if len(kw) > maxKeywords {
		return fmt.Errorf("%w: too many keywords (%d > %d)", domain.ErrInvalidQuery, len(kw), maxKeywords)
	}
	for _, k := range kw {
		if len(k) > maxKeywordLen {
			return fmt.Errorf("%w: keyword %q is too long", domain.ErrInvalidQuery, k)
		}
	}
	return nil
}

// wrapStructErr — первое нарушение тега в виде "поле: правило".
func wrapStructErr(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed on %q", domain.ErrInvalidQuery, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
}

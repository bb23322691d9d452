package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Закрытая таксономия ошибок. Адаптеры переводят любые ответы вендоров в эти значения
// на своей границе, координатор не зависит от форматов ошибок конкретных API.
var (
	ErrVendorUnavailable       = errors.New("vendor unavailable")
	ErrVendorRateLimited       = errors.New("vendor rate limited")
	ErrVendorAuth              = errors.New("vendor auth error")
	ErrVendorMalformedResponse = errors.New("vendor malformed response")
	ErrNormalization           = errors.New("normalization error")
	ErrNoResults               = errors.New("vendor returned no results")
	ErrCircuitOpen             = errors.New("vendor circuit open")
	ErrAllProvidersFailed      = errors.New("all providers failed")
	ErrCacheUnavailable        = errors.New("cache unavailable")
)

// VendorError — ошибка адаптера с видом (Kind - один из sentinel выше) и подсказкой Retry-After.
type VendorError struct {
	Vendor     VendorID
	Kind       error
	RetryAfter time.Duration
	Err        error
}

func (e *VendorError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Vendor))
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.RetryAfter > 0 {
		fmt.Fprintf(&b, " (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is — errors.Is(err, ErrVendorRateLimited) и т.п. работают по Kind.
func (e *VendorError) Is(target error) bool { return e.Kind == target }

func (e *VendorError) Unwrap() error { return e.Err }

// NewVendorError - конструктор.
func NewVendorError(vendor VendorID, kind, cause error) *VendorError {
	return &VendorError{Vendor: vendor, Kind: kind, Err: cause}
}

// Unavailable, RateLimited, AuthError, Malformed - короткие конструкторы для адаптеров.
func Unavailable(vendor VendorID, cause error) error {
	return NewVendorError(vendor, ErrVendorUnavailable, cause)
}

func RateLimited(vendor VendorID, retryAfter time.Duration, cause error) error {
	e := NewVendorError(vendor, ErrVendorRateLimited, cause)
	e.RetryAfter = retryAfter
	return e
}

func AuthError(vendor VendorID, cause error) error {
	return NewVendorError(vendor, ErrVendorAuth, cause)
}

func Malformed(vendor VendorID, cause error) error {
	return NewVendorError(vendor, ErrVendorMalformedResponse, cause)
}

// RetryAfterHint — подсказка вендора, если она есть.
func RetryAfterHint(err error) (time.Duration, bool) {
	var ve *VendorError
	if errors.As(err, &ve) && ve.RetryAfter > 0 {
		return ve.RetryAfter, true
	}
	return 0, false
}

// IsTransient — сбои, которые имеет смысл повторять и которые двигают circuit breaker.
func IsTransient(err error) bool {
	return errors.Is(err, ErrVendorUnavailable) || errors.Is(err, ErrVendorRateLimited)
}

// VendorFailure — причина отказа одного вендора в рамках поиска.
type VendorFailure struct {
	Vendor VendorID `json:"vendor"`
	Err    error    `json:"-"`
}

// AllProvidersFailedError — все вендоры исчерпали попытки; несёт причины по каждому.
type AllProvidersFailedError struct {
	Failures []VendorFailure
}

func (e *AllProvidersFailedError) Error() string {
	if len(e.Failures) == 0 {
		return ErrAllProvidersFailed.Error() + ": no vendors configured"
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Vendor, f.Err))
	}
	return ErrAllProvidersFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *AllProvidersFailedError) Is(target error) bool { return target == ErrAllProvidersFailed }

// Unwrap — даёт errors.Is доступ к причинам отдельных вендоров.
func (e *AllProvidersFailedError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Err)
	}
	return out
}

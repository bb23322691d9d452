package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

func TestValidatePart(t *testing.T) {
	v := NewQueryValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		q       *domain.PartQuery
		wantErr bool
	}{
		{"ok", &domain.PartQuery{PartNumber: "LM358N"}, false},
		{"ok with keywords", &domain.PartQuery{PartNumber: "LM358N", Keywords: []string{"opamp"}, Vendors: []domain.VendorID{"mouser"}}, false},
		{"nil", nil, true},
		{"empty part number", &domain.PartQuery{}, true},
		{"blank part number", &domain.PartQuery{PartNumber: "   "}, true},
		{"too long", &domain.PartQuery{PartNumber: strings.Repeat("A", maxPartNumberLen+1)}, true},
		{"long keyword", &domain.PartQuery{PartNumber: "X", Keywords: []string{strings.Repeat("k", maxKeywordLen+1)}}, true},
		{"too many keywords", &domain.PartQuery{PartNumber: "X", Keywords: make([]string, maxKeywords+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePart(ctx, tt.q)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidQuery) {
					t.Fatalf("want ErrInvalidQuery, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateDatasheet(t *testing.T) {
	v := NewQueryValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://www.ti.com/lit/ds/symlink/lm358.pdf", false},
		{"http", "http://example.com/a.pdf", false},
		{"empty", "", true},
		{"relative", "/lit/ds/lm358.pdf", true},
		{"ftp", "ftp://example.com/a.pdf", true},
		{"garbage", "not a url", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDatasheet(ctx, &domain.DatasheetQuery{URL: tt.url})
			if tt.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidQuery) {
				t.Fatalf("want ErrInvalidQuery, got %v", err)
			}
		})
	}
}

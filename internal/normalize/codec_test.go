package normalize_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/normalize"
	"github.com/stretchr/testify/require"
)

func sampleParts(n int) []domain.CanonicalPart {
	out := make([]domain.CanonicalPart, n)
	for i := range out {
		out[i] = domain.CanonicalPart{
			PartNumber:    "LM358N",
			Manufacturer:  "Texas Instruments",
			Description:   strings.Repeat("dual operational amplifier ", 4),
			PricingTiers:  []domain.PriceTier{{QuantityBreak: 1, UnitPrice: 0.5, Currency: "USD"}},
			StockQuantity: int64(i),
			Vendor:        "digikey",
			FetchedAt:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func TestCodec_SmallPayloadIsPlainJSON(t *testing.T) {
	c := normalize.NewCodec(0)
	parts := sampleParts(1)

	env, err := c.Encode("digikey", parts)
	require.NoError(t, err)
	require.Equal(t, normalize.SchemaVersion, env.SchemaVersion)
	require.Equal(t, domain.EncodingPartsJSON, env.Encoding)
	require.Equal(t, domain.VendorID("digikey"), env.VendorID)

	got, err := c.Decode(env)
	require.NoError(t, err)
	require.Equal(t, parts, got)
}

func TestCodec_LargePayloadIsCompressed(t *testing.T) {
	c := normalize.NewCodec(256)
	parts := sampleParts(50)

	env, err := c.Encode("digikey", parts)
	require.NoError(t, err)
	require.Equal(t, domain.EncodingPartsJSONZstd, env.Encoding)

	got, err := c.Decode(env)
	require.NoError(t, err)
	require.Equal(t, parts, got)
}

func TestCodec_Rejects(t *testing.T) {
	c := normalize.NewCodec(0)
	env, err := c.Encode("digikey", sampleParts(1))
	require.NoError(t, err)

	badVersion := env.Clone()
	badVersion.SchemaVersion = 2
	_, err = c.Decode(badVersion)
	require.ErrorIs(t, err, domain.ErrNormalization)

	badEncoding := env.Clone()
	badEncoding.Encoding = "parts+msgpack"
	_, err = c.Decode(badEncoding)
	require.ErrorIs(t, err, domain.ErrNormalization)

	badZstd := env.Clone()
	badZstd.Encoding = domain.EncodingPartsJSONZstd
	_, err = c.Decode(badZstd)
	require.ErrorIs(t, err, domain.ErrNormalization)
}

func TestCodec_EmptyResult(t *testing.T) {
	c := normalize.NewCodec(0)
	env, err := c.Encode("mouser", nil)
	require.NoError(t, err)

	got, err := c.Decode(env)
	require.NoError(t, err)
	require.Empty(t, got)
}

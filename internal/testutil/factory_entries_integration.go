//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeEntry — запись Swarm с уникальным payload; отрицательный ttl даёт уже истёкшую запись.
func MakeEntry(fp string, ttl time.Duration, src domain.SourceTag) domain.CacheEntry {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.CacheEntry{
		Fingerprint: domain.Fingerprint(fp),
		Envelope: domain.Envelope{
			SchemaVersion: 1,
			VendorID:      "digikey",
			Encoding:      domain.EncodingPartsJSON,
			Payload:       []byte(`{"parts":[{"part_number":"LM358N-` + UniqSuffix() + `","vendor":"digikey"}]}`),
		},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Source:    src,
	}
}

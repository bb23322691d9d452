package normalize

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/klauspost/compress/zstd"
)

// SchemaVersion — текущая версия формата payload.
const SchemaVersion = 1

// DefaultCompressThreshold — payload длиннее этого сжимается zstd.
const DefaultCompressThreshold = 4 << 10

// maxDecodedSize — защита от "zip-бомб" в payload от пиров.
const maxDecodedSize = 32 << 20

type payloadV1 struct {
	Parts []domain.CanonicalPart `json:"parts"`
}

// Codec — (де)сериализация канонических результатов в Envelope.
type Codec struct {
	threshold int

	encOnce sync.Once
	enc     *zstd.Encoder
	encErr  error
	decOnce sync.Once
	dec     *zstd.Decoder
	decErr  error
}

// NewCodec — threshold <= 0 означает DefaultCompressThreshold.
func NewCodec(threshold int) *Codec {
	if threshold <= 0 {
		threshold = DefaultCompressThreshold
	}
	return &Codec{threshold: threshold}
}

// Encode — JSON, при превышении порога сжатый zstd.
func (c *Codec) Encode(vendor domain.VendorID, parts []domain.CanonicalPart) (domain.Envelope, error) {
	if parts == nil {
		parts = []domain.CanonicalPart{}
	}
	data, err := json.Marshal(payloadV1{Parts: parts})
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("%w: encode: %v", domain.ErrNormalization, err)
	}
	env := domain.Envelope{SchemaVersion: SchemaVersion, VendorID: vendor, Encoding: domain.EncodingPartsJSON, Payload: data}
	if len(data) <= c.threshold {
		return env, nil
	}
	enc, err := c.encoder()
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("%w: zstd encoder: %v", domain.ErrNormalization, err)
	}
	env.Encoding = domain.EncodingPartsJSONZstd
	env.Payload = enc.EncodeAll(data, make([]byte, 0, len(data)/2))
	return env, nil
}

// Decode — неизвестная версия схемы или кодировка отклоняются.
func (c *Codec) Decode(env domain.Envelope) ([]domain.CanonicalPart, error) {
	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", domain.ErrNormalization, env.SchemaVersion)
	}
	data := env.Payload
	switch env.Encoding {
	case domain.EncodingPartsJSON:
	case domain.EncodingPartsJSONZstd:
		dec, err := c.decoder()
		if err != nil {
			return nil, fmt.Errorf("%w: zstd decoder: %v", domain.ErrNormalization, err)
		}
		data, err = dec.DecodeAll(env.Payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", domain.ErrNormalization, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", domain.ErrNormalization, env.Encoding)
	}

	var p payloadV1
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrNormalization, err)
	}
	return p.Parts, nil
}

func (c *Codec) encoder() (*zstd.Encoder, error) {
	c.encOnce.Do(func() {
		c.enc, c.encErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	return c.enc, c.encErr
}

func (c *Codec) decoder() (*zstd.Decoder, error) {
	c.decOnce.Do(func() {
		c.dec, c.decErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize), zstd.WithDecoderConcurrency(0))
	})
	return c.dec, c.decErr
}

package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
)

const maxLineBytes = 1 << 20

// ForEachQuery читает JSONL и вызывает fn для каждого валидного запроса.
// Невалидные строки считаются, пустые пропускаются; ошибка fn прерывает чтение.
func ForEachQuery(ctx context.Context, v ports.QueryValidator, r io.Reader, fn func(domain.PartQuery) error) (Summary, error) {
	var s Summary

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		q, err := PartQueryFromJSON(ctx, v, line)
		if err != nil {
			s.Invalid++
			continue
		}
		if err := fn(*q); err != nil {
			return s, err
		}
		s.Valid++
	}
	if err := sc.Err(); err != nil {
		return s, fmt.Errorf("scan: %w", err)
	}
	return s, nil
}

// ValidateJSONLStream — валидные запросы в каноническом виде, по одному на строку.
func ValidateJSONLStream(ctx context.Context, v ports.QueryValidator, r io.Reader, ow io.Writer) (Summary, error) {
	return ForEachQuery(ctx, v, r, canonicalWriter(ow))
}

package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
)

// InputFormat — формат файла запросов.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
	FormatCSV   InputFormat = "csv"
)

// Summary — итог проверки файла.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string { return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid) }

// ResolveFormat: auto выбирается по расширению, по умолчанию JSON.
func ResolveFormat(format InputFormat, filePath string) InputFormat {
	if format != FormatAuto && format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".csv":
		return FormatCSV
	default:
		return FormatJSON
	}
}

// ScanQueries вызывает fn для каждого валидного нормализованного запроса из r.
// JSON - один объект или массив; JSONL - объект на строку; CSV - BOM-список.
func ScanQueries(ctx context.Context, v ports.QueryValidator, r io.Reader, format InputFormat, fn func(domain.PartQuery) error) (Summary, error) {
	switch format {
	case FormatJSON:
		return scanJSON(ctx, v, r, fn)
	case FormatJSONL:
		return ForEachQuery(ctx, v, r, fn)
	case FormatCSV:
		return ForEachCSVQuery(ctx, v, r, fn)
	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// ScanFile — ScanQueries по файлу; формат auto определяется по расширению.
func ScanFile(ctx context.Context, v ports.QueryValidator, filePath string, format InputFormat, fn func(domain.PartQuery) error) (Summary, error) {
	format = ResolveFormat(format, filePath)
	if format != FormatJSON && format != FormatJSONL && format != FormatCSV {
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
	f, err := os.Open(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ScanQueries(ctx, v, f, format, fn)
}

// ValidateFile пишет валидные запросы в ow построчно в каноническом JSON.
func ValidateFile(ctx context.Context, v ports.QueryValidator, filePath string, format InputFormat, ow io.Writer) (Summary, error) {
	return ScanFile(ctx, v, filePath, format, canonicalWriter(ow))
}

func canonicalWriter(ow io.Writer) func(domain.PartQuery) error {
	return func(q domain.PartQuery) error {
		line, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal query: %w", err)
		}
		if _, err := ow.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write query: %w", err)
		}
		return nil
	}
}

// scanJSON: объект - единственный запрос, ошибка разбора фатальна;
// массив - каждый элемент проверяется отдельно.
func scanJSON(ctx context.Context, v ports.QueryValidator, r io.Reader, fn func(domain.PartQuery) error) (Summary, error) {
	br := bufio.NewReader(r)
	first, err := firstNonSpace(br)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: empty input", domain.ErrInvalidQuery)
	}
	raw, err := io.ReadAll(br)
	if err != nil {
		return Summary{}, fmt.Errorf("read: %w", err)
	}

	if first != '[' {
		q, err := PartQueryFromJSON(ctx, v, raw)
		if err != nil {
			return Summary{Invalid: 1}, err
		}
		if err := fn(*q); err != nil {
			return Summary{}, err
		}
		return Summary{Valid: 1}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Summary{}, fmt.Errorf("%w: invalid json array: %v", domain.ErrInvalidQuery, err)
	}
	var s Summary
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		q, err := PartQueryFromJSON(ctx, v, item)
		if err != nil {
			s.Invalid++
			continue
		}
		if err := fn(*q); err != nil {
			return s, err
		}
		s.Valid++
	}
	return s, nil
}

// firstNonSpace смотрит первый значимый байт, не забирая его из reader'а.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

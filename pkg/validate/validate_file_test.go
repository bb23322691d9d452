package validate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateFile_Formats(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		want    Summary
		outHas  []string
	}{
		{
			name: "single json object", file: "one.json",
			content: `{"part_number":"lm358n"}`,
			want:    Summary{Valid: 1}, outHas: []string{`"LM358N"`},
		},
		{
			name: "json array", file: "bom.json",
			content: ` [{"part_number":"lm358n"},{"part_number":""},{"part_number":"ne555p","vendors":["mouser"]}]`,
			want:    Summary{Valid: 2, Invalid: 1}, outHas: []string{`"LM358N"`, `"NE555P"`},
		},
		{
			name: "jsonl", file: "list.jsonl",
			content: "{\"part_number\":\"A\"}\n{\"part_number\":\"\"}\n{\"part_number\":\"C\"}\n",
			want:    Summary{Valid: 2, Invalid: 1},
		},
		{
			name: "csv bom", file: "bom.csv",
			content: "\uFEFFMPN,keywords,vendors\n# резисторы отдельно\nlm358n,Dual;OpAmp,Mouser;digikey\n,,\nne555p,,\n",
			want:    Summary{Valid: 2}, outHas: []string{`"LM358N"`, `"dual"`, `"mouser"`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, tc.file, tc.content)

			var out bytes.Buffer
			got, err := ValidateFile(context.Background(), NewQueryValidator(), path, FormatAuto, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Valid, strings.Count(out.String(), "\n"))
			for _, s := range tc.outHas {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestValidateFile_JSONObjectInvalid(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"part_number":"X","extra":1}`)

	var out bytes.Buffer
	got, err := ValidateFile(context.Background(), NewQueryValidator(), path, FormatJSON, &out)
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
	assert.Equal(t, Summary{Invalid: 1}, got)
	assert.Zero(t, out.Len())
	assert.Equal(t, "0 valid / 1 invalid", got.String())
}

func TestValidateFile_Errors(t *testing.T) {
	ctx := context.Background()
	qv := NewQueryValidator()

	_, err := ValidateFile(ctx, qv, filepath.Join(t.TempDir(), "missing.json"), FormatJSON, &bytes.Buffer{})
	assert.Error(t, err, "open error")

	_, err = ValidateFile(ctx, qv, writeTemp(t, "q.txt", `{}`), InputFormat("xml"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported format")

	_, err = ValidateFile(ctx, qv, writeTemp(t, "noheader.csv", "keywords\nfoo\n"), FormatAuto, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	_, err = ValidateFile(ctx, qv, writeTemp(t, "empty.json", "  \n"), FormatAuto, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestScanQueries_CallbackErrorStops(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := ScanQueries(context.Background(), NewQueryValidator(),
		strings.NewReader("part_number\nA\nB\n"), FormatCSV,
		func(domain.PartQuery) error { calls++; return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, FormatJSONL, ResolveFormat(FormatAuto, "a.JSONL"))
	assert.Equal(t, FormatJSONL, ResolveFormat(FormatAuto, "a.ndjson"))
	assert.Equal(t, FormatCSV, ResolveFormat("", "bom.csv"))
	assert.Equal(t, FormatJSON, ResolveFormat(FormatAuto, "a.txt"))
	assert.Equal(t, FormatJSONL, ResolveFormat(FormatJSONL, "a.json"), "явный формат важнее расширения")
}

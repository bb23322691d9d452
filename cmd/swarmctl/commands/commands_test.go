package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/internal/ports/mocks"
)

func staticOpener(svc ports.LookupService, closed *bool) Opener {
	return func(context.Context, *Options) (ports.LookupService, func(), error) {
		return svc, func() {
			if closed != nil {
				*closed = true
			}
		}, nil
	}
}

func run(t *testing.T, open Opener, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCmd("test", open)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

var lm358 = domain.CanonicalPart{
	PartNumber:    "LM358N",
	Manufacturer:  "Texas Instruments",
	Description:   "Dual op-amp",
	DatasheetURL:  "https://www.ti.com/lit/ds/symlink/lm358.pdf",
	PricingTiers:  []domain.PriceTier{{QuantityBreak: 1, UnitPrice: 0.55, Currency: "USD"}},
	StockQuantity: 1200,
	Vendor:        "mouser",
}

func TestRoot_ShowsHelpWithoutSubcommand(t *testing.T) {
	out, _, err := run(t, nil, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "lookup")
}

func TestLookup_PrintsParts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().LookupPart(gomock.Any(), domain.PartQuery{
		PartNumber: "lm358n",
		Keywords:   []string{"opamp", "dual"},
		Vendors:    []domain.VendorID{"mouser"},
	}).Return([]domain.CanonicalPart{lm358}, nil)

	closed := false
	out, _, err := run(t, staticOpener(svc, &closed), "", "lookup", "lm358n", "-k", "opamp,dual", "--vendor", "mouser")
	require.NoError(t, err)
	assert.True(t, closed, "node must be closed after the command")
	assert.Contains(t, out, "LM358N")
	assert.Contains(t, out, "Texas Instruments")
	assert.Contains(t, out, "[mouser]")
	assert.Contains(t, out, "stock:     1200")
	assert.Contains(t, out, "1+ 0.55 USD")
}

func TestLookup_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().LookupPart(gomock.Any(), gomock.Any()).Return([]domain.CanonicalPart{lm358}, nil)

	out, _, err := run(t, staticOpener(svc, nil), "", "--json", "lookup", "LM358N")
	require.NoError(t, err)

	var got []domain.CanonicalPart
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "LM358N", got[0].PartNumber)
}

func TestLookup_AllProvidersFailed_ShowsReasons(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().LookupPart(gomock.Any(), gomock.Any()).Return(nil, &domain.AllProvidersFailedError{
		Failures: []domain.VendorFailure{{Vendor: "digikey", Err: domain.AuthError("digikey", errors.New("bad secret"))}},
	})

	_, errOut, err := run(t, staticOpener(svc, nil), "", "lookup", "NOPE")
	require.Error(t, err)
	assert.Contains(t, errOut, "no result found for NOPE")
	assert.Contains(t, errOut, "digikey")
	assert.Contains(t, errOut, "bad secret")
}

func TestLookup_OpenFailure(t *testing.T) {
	open := func(context.Context, *Options) (ports.LookupService, func(), error) {
		return nil, nil, errors.New("read vendors file: no such file")
	}
	_, errOut, err := run(t, open, "", "lookup", "LM358N")
	require.Error(t, err)
	assert.Contains(t, errOut, "cannot start lookup")
}

func TestLookup_RequiresArgument(t *testing.T) {
	_, _, err := run(t, staticOpener(nil, nil), "", "lookup")
	require.Error(t, err)
}

func TestDatasheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().LookupDatasheet(gomock.Any(), domain.DatasheetQuery{URL: lm358.DatasheetURL}).Return(lm358, nil)

	out, _, err := run(t, staticOpener(svc, nil), "", "datasheet", lm358.DatasheetURL)
	require.NoError(t, err)
	assert.Contains(t, out, "datasheet: "+lm358.DatasheetURL)
}

func TestVendors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().Vendors().Return([]domain.VendorStatus{
		{Vendor: "digikey", Priority: 1, Breaker: "closed"},
		{Vendor: "mouser", Priority: 2, Breaker: "open"},
	})

	out, _, err := run(t, staticOpener(svc, nil), "", "vendors")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "digikey")
	assert.Contains(t, lines[1], "breaker=open")
}

func TestFingerprint_EquivalentQueriesShareKey(t *testing.T) {
	a, _, err := run(t, nil, "", "fingerprint", "lm358n", "-k", "Dual,opamp")
	require.NoError(t, err)
	b, _, err := run(t, nil, "", "fingerprint", " LM358N ", "-k", "opamp,dual")
	require.NoError(t, err)

	want := domain.FingerprintPart(domain.PartQuery{PartNumber: "LM358N", Keywords: []string{"dual", "opamp"}})
	assert.Equal(t, string(want), strings.TrimSpace(a))
	assert.Equal(t, a, b)

	_, _, err = run(t, nil, "", "fingerprint", "--datasheet", "not a url")
	require.Error(t, err)
}

func TestValidate_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.jsonl")
	content := `{"part_number":" lm358n ","keywords":["Dual"]}
{"part_number":""}

{"part_number":"NE555P"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, errOut, err := run(t, nil, "", "validate", "--in", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "2 valid / 1 invalid")
	assert.Contains(t, out, `"part_number":"LM358N"`)
	assert.Contains(t, out, `"part_number":"NE555P"`)
}

func TestBatch_CountsResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().LookupPart(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q domain.PartQuery) ([]domain.CanonicalPart, error) {
			if q.PartNumber == "LM358N" {
				return []domain.CanonicalPart{lm358}, nil
			}
			return nil, &domain.AllProvidersFailedError{}
		}).Times(2)

	stdin := `{"part_number":"lm358n"}
{"part_number":"nope-1"}
{"oops":
`
	out, errOut, err := run(t, staticOpener(svc, nil), stdin, "batch")
	require.NoError(t, err)
	assert.Contains(t, out, "LM358N")
	assert.Contains(t, errOut, "NOPE-1: no result")
	assert.Contains(t, errOut, "1 found / 1 missed / 1 invalid")
}

func TestBatch_CSVFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	svc.EXPECT().LookupPart(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q domain.PartQuery) ([]domain.CanonicalPart, error) {
			assert.Equal(t, []domain.VendorID{"mouser"}, q.Vendors)
			return []domain.CanonicalPart{lm358}, nil
		})

	path := filepath.Join(t.TempDir(), "bom.csv")
	require.NoError(t, os.WriteFile(path, []byte("part_number,vendors\nlm358n,Mouser\n\"broken,\n"), 0o600))

	_, errOut, err := run(t, staticOpener(svc, nil), "", "batch", "--in", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "1 found / 0 missed / 1 invalid")
}

func TestValidate_StdinAllInvalidFails(t *testing.T) {
	_, errOut, err := run(t, nil, "{\"part_number\":\"\"}\n", "validate")
	require.Error(t, err)
	assert.Contains(t, errOut, "0 valid / 1 invalid")
}

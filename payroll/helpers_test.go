package payroll

import (
	"strings"
	"testing"
	"time"

	"payprep/importer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, name, content string) *importer.Table {
	t.Helper()
	table, err := (&importer.CSVReader{}).Read(strings.NewReader(content), name)
	require.NoError(t, err)
	return table
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func day(year int, month time.Month, dom int) time.Time {
	return time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
}

func requireDecimal(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	require.True(t, got.Valid, "expected a value, got null")
	require.Truef(t, mustDecimal(t, want).Equal(got.Decimal), "want %s, got %s", want, got.Decimal)
}

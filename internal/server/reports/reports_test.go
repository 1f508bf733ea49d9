package reports

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, s := range []string{"inventory", "low-stock", "sales"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), k)
	}

	_, err := ParseKind("payroll")
	var vErr *common.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Message, "payroll")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,234,567.50", FormatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "99.99", FormatMoney(decimal.RequireFromString("99.994")))
}

func TestReport_Totals(t *testing.T) {
	r := &Report{Rows: []Row{
		{Quantity: 2, Total: decimal.NewFromInt(200)},
		{Quantity: 3, Total: decimal.RequireFromString("10.5")},
	}}
	qty, total := r.Totals()
	assert.Equal(t, 5, qty)
	assert.True(t, total.Equal(decimal.RequireFromString("210.5")))
}

func TestRender(t *testing.T) {
	r := &Report{
		Kind:        KindSales,
		GeneratedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Rows: []Row{
			{Date: "2024-05-01", Product: "Sugar", Quantity: 3, Price: decimal.NewFromInt(100), Total: decimal.NewFromInt(300)},
			{Date: "2024-05-01", Product: "Café au lait", Quantity: 1, Price: decimal.NewFromInt(50), Total: decimal.NewFromInt(50)},
		},
	}

	out, err := Render(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_Empty(t *testing.T) {
	out, err := Render(&Report{Kind: KindLowStock, GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

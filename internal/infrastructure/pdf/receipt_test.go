package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "NGN 1,250,000.50", formatMoney(decimal.RequireFromString("1250000.5"), "NGN"))
	assert.Equal(t, "850.00", formatMoney(decimal.NewFromInt(850), ""))
	assert.Equal(t, "-1,000.00", formatMoney(decimal.NewFromInt(-1000), ""))
}

func TestReceiptLines(t *testing.T) {
	tx := &entity.PaymentTransaction{
		Amount:    decimal.NewFromInt(20500),
		PackageID: "pkg-1",
		Duration:  entity.DurationMonthly,
		Breakdown: entity.PaymentBreakdown{
			PackageAmount: decimal.NewFromInt(12000),
			LocationTotal: decimal.NewFromInt(8500),
			Locations: []entity.LocationFee{
				{LocationID: "l1", LocationType: "headquarters", CityRegion: "Lekki Phase 1", City: "Lekki", Fee: decimal.NewFromInt(8500)},
			},
		},
	}
	lines := receiptLines(tx)
	require.Len(t, lines, 2)
	assert.Equal(t, "pkg-1 (monthly)", lines[0].detail)
	assert.Equal(t, "headquarters - Lekki Phase 1, Lekki", lines[1].detail)

	solo := receiptLines(&entity.PaymentTransaction{Amount: decimal.NewFromInt(5)})
	require.Len(t, solo, 1)
	assert.Equal(t, "Payment", solo[0].concept)
}

func TestRenderReceipt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tx := &entity.PaymentTransaction{
		TransactionID:  "LOC-20260301-ABC",
		OrganizationID: "org-1",
		Kind:           entity.PaymentKindLocation,
		Amount:         decimal.NewFromInt(8500),
		Currency:       "NGN",
		Status:         entity.PaymentSuccessful,
		Payer:          entity.Payer{Name: "Ada", Email: "ada@example.com"},
		VerifiedAt:     &now,
		CreatedAt:      now,
	}
	b, err := NewReceiptRenderer("").RenderReceipt(context.Background(), tx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

package builder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmehta6/paisatrail/internal/model"
)

func msgWithBody(body string) model.RawMessage {
	return model.RawMessage{
		Sender:     "VK-HDFCBK",
		Body:       body,
		ReceivedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Direction:  model.DirectionReceived,
	}
}

func TestBuild(t *testing.T) {
	fields := model.ExtractedFields{
		model.FieldAmount:   "1500.00",
		model.FieldType:     "debited",
		model.FieldMerchant: "AMAZON",
		model.FieldDate:     "15-01-2024 14:30:25",
		model.FieldAccount:  "XXXX1234",
	}
	msg := msgWithBody("Rs.1500.00 debited from A/c no XXXX1234 at AMAZON on 15-01-2024 14:30:25")

	txn, err := Build(fields, msg, "acct-1")
	require.NoError(t, err)

	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, model.KindExpense, txn.Kind)
	assert.Equal(t, "AMAZON", txn.Merchant)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC), txn.Date)
	assert.Equal(t, "acct-1", txn.AccountID)
	assert.Equal(t, msg.Body, txn.Description)
	assert.Equal(t, model.SourceSMSExtracted, txn.Source)
	require.NoError(t, txn.Validate())
}

func TestBuildAmountFailures(t *testing.T) {
	msg := msgWithBody("Rs.x debited")

	_, err := Build(model.ExtractedFields{model.FieldAmount: "not-a-number"}, msg, "")
	assert.Error(t, err)

	_, err = Build(model.ExtractedFields{model.FieldAmount: "-50"}, msg, "")
	assert.Error(t, err)

	_, err = Build(model.ExtractedFields{}, msg, "")
	assert.Error(t, err)
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		extractedType string
		want          model.TransactionKind
	}{
		{"debit keyword", "Rs.100 debited from your account", "", model.KindExpense},
		{"credit keyword", "Rs.100 credited to your account", "", model.KindIncome},
		{"credit beats debit", "Rs.100 debited from X and credited to you", "", model.KindIncome},
		{"received is credit", "You received Rs.100 via UPI payment", "", model.KindIncome},
		{"withdrawn is debit", "Rs.500 withdrawn at ATM. Avl balance Rs.1000", "", model.KindExpense},
		{"extracted type used when body is silent", "Rs.100 spent on card", "debited", model.KindExpense},
		{"body keyword overrides extracted type", "Rs.100 credited to account", "debited", model.KindIncome},
		{"defaults to expense", "Rs.100 transaction on your card", "", model.KindExpense},
		{"transfer with credit", "Rs.100 credited via NEFT transfer", "", model.KindTransferIn},
		{"transfer with debit", "Rs.100 debited for IMPS transfer", "", model.KindTransferOut},
		{"transfer alone is outgoing", "transfer of Rs.100 processed", "", model.KindTransferOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferKind(tt.body, tt.extractedType))
		})
	}
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"15-01-2024 14:30:25", time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC)},
		{"15-01-2024 14:30", time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)},
		{"15-01-2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15/01/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15-01-24", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15 Jan 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"", fallback},
		{"not a date", fallback},
		{"45-45-4545", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDate(tt.raw, fallback))
		})
	}
}

func TestMerchantFallback(t *testing.T) {
	t.Run("rescans body for merchant", func(t *testing.T) {
		msg := msgWithBody("Rs.100 debited at CHAAYOS on 01-01-2024")
		txn, err := Build(model.ExtractedFields{model.FieldAmount: "100"}, msg, "")
		require.NoError(t, err)
		assert.Equal(t, "CHAAYOS", txn.Merchant)
	})

	t.Run("placeholder when nothing is found", func(t *testing.T) {
		msg := msgWithBody("Rs.100 debited. Avl bal Rs.900")
		txn, err := Build(model.ExtractedFields{model.FieldAmount: "100"}, msg, "")
		require.NoError(t, err)
		assert.Equal(t, "Unknown Merchant", txn.Merchant)
	})
}

// Package builder assembles validated extracted fields into provisional
// transactions.
package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmehta6/paisatrail/internal/extract"
	"github.com/nmehta6/paisatrail/internal/model"
)

// Keyword families for transaction kind inference. Credit indicators
// beat debit indicators, which beat the raw extracted type string.
var (
	creditKeywords = []string{"credited", "credit", "received", "deposited"}
	debitKeywords  = []string{"debited", "debit", "withdrawn", "paid"}
)

// dateLayouts is the ordered list of formats attempted when parsing an
// extracted date string. Day-first layouts dominate Indian bank SMS.
var dateLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-06 15:04",
	"02-01-06",
	"02/01/06 15:04",
	"02/01/06",
	"2-1-2006",
	"2/1/2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 Jan 06",
}

// unknownMerchant is the placeholder used when no merchant can be found
// anywhere in the message.
const unknownMerchant = "Unknown Merchant"

// Build turns validated fields plus the original message into a
// provisional transaction. The only terminal failure is an unparsable
// or non-positive amount; every other gap is filled with a fallback.
func Build(fields model.ExtractedFields, msg model.RawMessage, accountID string) (*model.ProvisionalTransaction, error) {
	amount, err := decimal.NewFromString(fields[model.FieldAmount])
	if err != nil {
		return nil, fmt.Errorf("unparsable amount %q: %w", fields[model.FieldAmount], err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}

	merchant := fields[model.FieldMerchant]
	if merchant == "" {
		merchant = fallbackMerchant(msg.Body)
	}

	return &model.ProvisionalTransaction{
		Amount:      amount,
		Kind:        inferKind(msg.Body, fields[model.FieldType]),
		Merchant:    merchant,
		Date:        parseDate(fields[model.FieldDate], msg.ReceivedAt),
		AccountID:   accountID,
		Description: msg.Body,
		Source:      model.SourceSMSExtracted,
	}, nil
}

// inferKind classifies the transaction by scanning the full message
// body, not just the fragment the type pattern captured: the deciding
// keyword frequently sits outside the matched region.
func inferKind(body, extractedType string) model.TransactionKind {
	lower := strings.ToLower(body)

	kind := kindFromKeyword(strings.ToLower(extractedType))
	if containsAny(lower, debitKeywords) {
		kind = model.KindExpense
	}
	if containsAny(lower, creditKeywords) {
		kind = model.KindIncome
	}
	if kind == "" {
		kind = model.KindExpense
	}

	if strings.Contains(lower, "transfer") {
		if kind == model.KindIncome {
			return model.KindTransferIn
		}
		return model.KindTransferOut
	}
	return kind
}

func kindFromKeyword(word string) model.TransactionKind {
	switch {
	case word == "":
		return ""
	case containsAny(word, creditKeywords):
		return model.KindIncome
	case containsAny(word, debitKeywords):
		return model.KindExpense
	default:
		return ""
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// parseDate tries each known layout in order and falls back to the
// message arrival time rather than failing the transaction.
func parseDate(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return fallback
}

// fallbackMerchant re-scans the body with the generic at/to/from
// patterns before settling on the placeholder.
func fallbackMerchant(body string) string {
	if m := extract.FallbackMerchant(body); m != "" {
		return m
	}
	return unknownMerchant
}

package extract

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/nmehta6/paisatrail/internal/model"
)

// Validate checks that the extracted fields are individually
// well-formed enough to build a transaction from. It returns a list of
// human-readable problems; an empty list means the fields passed.
//
// A missing merchant is not an error: the transaction builder has its
// own merchant fallback.
func Validate(fields model.ExtractedFields) []string {
	var errs []string

	amount, ok := fields[model.FieldAmount]
	switch {
	case !ok || amount == "":
		errs = append(errs, "amount not found in message")
	default:
		d, err := decimal.NewFromString(amount)
		if err != nil || !d.IsPositive() {
			errs = append(errs, "invalid amount format or negative value")
		}
	}

	if merchant := fields[model.FieldMerchant]; merchant != "" {
		if len(merchant) < 2 || !containsLetter(merchant) {
			errs = append(errs, "invalid merchant name")
		}
	}

	return errs
}

func containsLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

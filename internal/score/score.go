// Package score computes the 0..1 confidence estimate for an
// extraction attempt.
package score

import (
	"strings"
	"time"
	"unicode"

	"github.com/nmehta6/paisatrail/internal/model"
)

// Field-presence and trust weights. The base score is their weighted
// sum; the weights total 1.0.
const (
	WeightAmount        = 0.30
	WeightType          = 0.20
	WeightMerchant      = 0.15
	WeightDate          = 0.10
	WeightAccount       = 0.10
	WeightPatternMatch  = 0.10
	WeightSenderTrusted = 0.05
)

// Additive bonuses, applied on top of the base score before clamping.
const (
	BonusFastProcessing  = 0.05
	BonusMerchantQuality = 0.05
	BonusAmountPrecision = 0.02

	fastProcessingLimit = 100 * time.Millisecond
	merchantQualityLen  = 5
)

// Factors are the independent signals that feed the confidence score.
type Factors struct {
	AmountPresent   bool
	TypePresent     bool
	MerchantPresent bool
	DatePresent     bool
	AccountPresent  bool
	PatternMatched  bool
	SenderTrusted   bool

	Elapsed  time.Duration
	Merchant string
	Amount   string
}

// FactorsFromDiagnostics derives scoring factors from a pipeline
// diagnostics record.
func FactorsFromDiagnostics(diag model.Diagnostics) Factors {
	return Factors{
		AmountPresent:   diag.Fields.Has(model.FieldAmount),
		TypePresent:     diag.Fields.Has(model.FieldType),
		MerchantPresent: diag.Fields.Has(model.FieldMerchant),
		DatePresent:     diag.Fields.Has(model.FieldDate),
		AccountPresent:  diag.Fields.Has(model.FieldAccount),
		PatternMatched:  diag.PatternMatched,
		SenderTrusted:   diag.SenderTrusted,
		Elapsed:         diag.Elapsed,
		Merchant:        diag.Fields[model.FieldMerchant],
		Amount:          diag.Fields[model.FieldAmount],
	}
}

// Score computes the confidence for a set of factors. It is a pure
// function: fixed factors always produce the same value, clamped to
// [0, 1].
func Score(f Factors) float64 {
	s := 0.0
	if f.AmountPresent {
		s += WeightAmount
	}
	if f.TypePresent {
		s += WeightType
	}
	if f.MerchantPresent {
		s += WeightMerchant
	}
	if f.DatePresent {
		s += WeightDate
	}
	if f.AccountPresent {
		s += WeightAccount
	}
	if f.PatternMatched {
		s += WeightPatternMatch
	}
	if f.SenderTrusted {
		s += WeightSenderTrusted
	}

	if f.Elapsed > 0 && f.Elapsed < fastProcessingLimit {
		s += BonusFastProcessing
	}
	if len(f.Merchant) > merchantQualityLen && containsLetter(f.Merchant) {
		s += BonusMerchantQuality
	}
	if strings.Contains(f.Amount, ".") {
		s += BonusAmountPrecision
	}

	return clamp(s)
}

func clamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func containsLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

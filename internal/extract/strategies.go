package extract

import (
	"regexp"

	"github.com/nmehta6/paisatrail/internal/model"
)

// Strategy is one fallback extraction attempt: a pure function from
// message text to an optional raw field value. Strategies for a field
// are tried in order; the first hit wins.
type Strategy struct {
	Name  string
	Apply func(text string) (string, bool)
}

func regexStrategy(name string, re *regexp.Regexp) Strategy {
	return Strategy{
		Name: name,
		Apply: func(text string) (string, bool) {
			return firstGroup(re, text)
		},
	}
}

// firstGroup returns the first capturing group of the first match, or
// the whole match when the pattern has no groups.
func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return m[1], true
	}
	return m[0], true
}

// Generic fallback patterns, applied when an institution's own pattern
// misses. Amount and account deliberately have no fallbacks: guessing
// either from unrecognized text produces confident-looking garbage.
var (
	merchantAtRe   = regexp.MustCompile(`(?i)\bat\s+([A-Za-z0-9&.\- ]{2,40}?)(?:\s+(?:on|via|ref|using|thru)\b|[.,;]|$)`)
	merchantToRe   = regexp.MustCompile(`(?i)\bto\s+([A-Za-z0-9&.\- ]{2,40}?)(?:\s+(?:on|via|ref|using|thru)\b|[.,;]|$)`)
	merchantFromRe = regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z0-9&.\- ]{2,40}?)(?:\s+(?:on|via|ref|using|thru)\b|[.,;]|$)`)

	dateNumericRe = regexp.MustCompile(`([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4}(?:[ ,]+[0-9]{1,2}:[0-9]{2}(?::[0-9]{2})?)?)`)
	dateNamedRe   = regexp.MustCompile(`(?i)([0-9]{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+[0-9]{2,4})`)

	typeKeywordRe = regexp.MustCompile(`(?i)\b(debited|credited|paid|received|withdrawn|deposited|transferred|spent)\b`)
)

// FallbackMerchant runs only the generic merchant strategies against a
// message body, returning a normalized merchant name or empty. The
// transaction builder uses it as a last resort before the placeholder.
func FallbackMerchant(body string) string {
	for _, strategy := range fallbacks[model.FieldMerchant] {
		if raw, ok := strategy.Apply(body); ok {
			return NormalizeMerchant(raw)
		}
	}
	return ""
}

// fallbacks lists the built-in strategies per field, in priority order.
var fallbacks = map[model.Field][]Strategy{
	model.FieldMerchant: {
		regexStrategy("merchant-at", merchantAtRe),
		regexStrategy("merchant-to", merchantToRe),
		regexStrategy("merchant-from", merchantFromRe),
	},
	model.FieldDate: {
		regexStrategy("date-numeric", dateNumericRe),
		regexStrategy("date-named", dateNamedRe),
	},
	model.FieldType: {
		regexStrategy("type-keyword", typeKeywordRe),
	},
}

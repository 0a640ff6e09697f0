package extract

import (
	"regexp"
	"strings"
)

const maxMerchantLen = 50

var (
	currencyTokenRe = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	merchantJunkRe  = regexp.MustCompile(`[^A-Za-z0-9&.\- ]`)
	accountMaskRe   = regexp.MustCompile(`[^0-9X]`)
)

// NormalizeAmount strips currency markers, digit-group commas and
// whitespace from a raw amount string, e.g. "Rs. 1,500.00" -> "1500.00".
func NormalizeAmount(raw string) string {
	s := currencyTokenRe.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", "")
	s = whitespaceRe.ReplaceAllString(s, "")
	return s
}

// NormalizeMerchant trims and collapses whitespace, drops everything but
// letters, digits, spaces and `&.-`, and caps the result at 50 runes.
func NormalizeMerchant(raw string) string {
	s := merchantJunkRe.ReplaceAllString(raw, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > maxMerchantLen {
		s = strings.TrimSpace(s[:maxMerchantLen])
	}
	return s
}

// NormalizeAccount reduces a raw account identifier to digits and the
// mask character X, e.g. "a/c xx-1234" -> "XX1234".
func NormalizeAccount(raw string) string {
	s := strings.ToUpper(raw)
	s = strings.ReplaceAll(s, "*", "X")
	return accountMaskRe.ReplaceAllString(s, "")
}

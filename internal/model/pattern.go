package model

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// PatternBundle holds the per-field extraction patterns for one financial
// institution. Regexes are compiled lazily on first use and cached; a
// pattern that fails to compile behaves as if it never matches rather
// than failing the lookup.
type PatternBundle struct {
	ID              string
	Institution     string
	SenderPattern   string
	AmountPattern   string
	MerchantPattern string
	DatePattern     string
	TypePattern     string
	AccountPattern  string // optional
	Active          bool

	mu       sync.Mutex
	compiled map[Field]*regexp.Regexp
	sender   *regexp.Regexp
	senderOK bool
}

// fieldPattern returns the raw pattern string for a field.
func (b *PatternBundle) fieldPattern(field Field) string {
	switch field {
	case FieldAmount:
		return b.AmountPattern
	case FieldType:
		return b.TypePattern
	case FieldMerchant:
		return b.MerchantPattern
	case FieldDate:
		return b.DatePattern
	case FieldAccount:
		return b.AccountPattern
	default:
		return ""
	}
}

// compile builds a case-insensitive regex from a stored pattern.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// FieldRegex returns the cached compiled regex for a field, or nil when
// the bundle has no pattern for the field or the pattern is malformed.
func (b *PatternBundle) FieldRegex(field Field) *regexp.Regexp {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.compiled == nil {
		b.compiled = make(map[Field]*regexp.Regexp, 5)
	}
	if re, ok := b.compiled[field]; ok {
		return re
	}

	re, err := compilePattern(b.fieldPattern(field))
	if err != nil {
		// Malformed or absent patterns are cached as non-matching.
		b.compiled[field] = nil
		return nil
	}
	b.compiled[field] = re
	return re
}

// MatchesSender reports whether the bundle's sender pattern matches the
// given sender identity. A malformed sender pattern never matches.
func (b *PatternBundle) MatchesSender(sender string) bool {
	b.mu.Lock()
	if !b.senderOK {
		re, err := compilePattern(b.SenderPattern)
		if err == nil {
			b.sender = re
		}
		b.senderOK = true
	}
	re := b.sender
	b.mu.Unlock()

	if re == nil {
		return false
	}
	return re.MatchString(sender)
}

// Validate ensures the bundle carries the minimum required data. It does
// not require the patterns to compile: a registered bundle with a broken
// regex degrades to non-matching instead of being rejected.
func (b *PatternBundle) Validate() error {
	if b.Institution == "" {
		return fmt.Errorf("institution is required")
	}
	if b.SenderPattern == "" {
		return fmt.Errorf("sender pattern is required")
	}
	if b.AmountPattern == "" {
		return fmt.Errorf("amount pattern is required")
	}
	return nil
}

// CloneDefinition returns a copy of the bundle's stored definition,
// without the compiled-regex cache. Used when handing bundles across the
// storage boundary.
func (b *PatternBundle) CloneDefinition() *PatternBundle {
	return &PatternBundle{
		ID:              b.ID,
		Institution:     b.Institution,
		SenderPattern:   b.SenderPattern,
		AmountPattern:   b.AmountPattern,
		MerchantPattern: b.MerchantPattern,
		DatePattern:     b.DatePattern,
		TypePattern:     b.TypePattern,
		AccountPattern:  b.AccountPattern,
		Active:          b.Active,
	}
}

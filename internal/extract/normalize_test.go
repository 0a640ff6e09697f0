package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Rs. 1,500.00", "1500.00"},
		{"₹1500", "1500"},
		{"INR 1,500.00", "1500.00"},
		{"rs 250", "250"},
		{"1,23,456.78", "123456.78"}, // lakh-style grouping
		{" 99.50 ", "99.50"},
		{"1500.00", "1500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAmount(tt.raw))
		})
	}
}

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "AMAZON", "AMAZON"},
		{"trims and collapses whitespace", "  SWIGGY   BANGALORE  ", "SWIGGY BANGALORE"},
		{"keeps ampersand dot dash", "M&M FIN. SVCS-LTD", "M&M FIN. SVCS-LTD"},
		{"strips other punctuation", "UBER*TRIP@HELP", "UBERTRIPHELP"},
		{"truncates to 50 characters", "AAAAABBBBBCCCCCDDDDDEEEEEFFFFFGGGGGHHHHHIIIIIJJJJJKKKKK",
			"AAAAABBBBBCCCCCDDDDDEEEEEFFFFFGGGGGHHHHHIIIIIJJJJJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMerchant(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), maxMerchantLen)
		})
	}
}

func TestNormalizeAccount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"XXXX1234", "XXXX1234"},
		{"xxxx1234", "XXXX1234"},
		{"**1234", "XX1234"},
		{"a/c xx-1234", "XX1234"},
		{"1234", "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAccount(tt.raw))
		})
	}
}

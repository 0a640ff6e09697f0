// Package extract pulls structured transaction fields out of raw SMS
// text using per-institution patterns with generic fallbacks.
package extract

import (
	"log/slog"

	"github.com/nmehta6/paisatrail/internal/model"
)

// Extract applies the bundle's field patterns to the message body and
// returns whatever could be found. Extraction is best-effort: a missing
// field, a non-matching pattern or a malformed regex all leave that
// field absent rather than failing the attempt.
func Extract(body string, bundle *model.PatternBundle) model.ExtractedFields {
	fields := make(model.ExtractedFields, 5)

	for _, field := range []model.Field{
		model.FieldAmount,
		model.FieldType,
		model.FieldMerchant,
		model.FieldDate,
		model.FieldAccount,
	} {
		raw, ok := extractField(body, bundle, field)
		if !ok {
			continue
		}
		fields[field] = normalizeField(field, raw)
	}

	return fields
}

// extractField tries the bundle's own pattern first, then the field's
// built-in fallback strategies in priority order.
func extractField(body string, bundle *model.PatternBundle, field model.Field) (string, bool) {
	if bundle != nil {
		// FieldRegex returns nil for absent or malformed patterns, so a
		// broken user-supplied regex degrades to the fallbacks.
		if raw, ok := firstGroup(bundle.FieldRegex(field), body); ok {
			return raw, true
		}
	}

	for _, strategy := range fallbacks[field] {
		if raw, ok := strategy.Apply(body); ok {
			slog.Debug("field extracted via fallback", "field", field, "strategy", strategy.Name)
			return raw, true
		}
	}
	return "", false
}

func normalizeField(field model.Field, raw string) string {
	switch field {
	case model.FieldAmount:
		return NormalizeAmount(raw)
	case model.FieldMerchant:
		return NormalizeMerchant(raw)
	case model.FieldAccount:
		return NormalizeAccount(raw)
	default:
		return raw
	}
}

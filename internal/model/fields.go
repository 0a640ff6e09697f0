package model

// Field names a single extractable piece of a financial SMS.
type Field string

// Extractable fields.
const (
	FieldAmount   Field = "amount"
	FieldType     Field = "type"
	FieldMerchant Field = "merchant"
	FieldDate     Field = "date"
	FieldAccount  Field = "account"
)

// ExtractedFields maps field names to the raw strings pulled out of a
// message body. It lives for a single extraction attempt.
type ExtractedFields map[Field]string

// Has reports whether a non-empty value was extracted for the field.
func (f ExtractedFields) Has(field Field) bool {
	return f[field] != ""
}

// Clone returns an independent copy of the map.
func (f ExtractedFields) Clone() ExtractedFields {
	out := make(ExtractedFields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmehta6/paisatrail/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		fields   model.ExtractedFields
		wantErrs []string
	}{
		{
			name: "valid fields",
			fields: model.ExtractedFields{
				model.FieldAmount:   "1500.00",
				model.FieldMerchant: "AMAZON",
			},
		},
		{
			name:   "decimal amount is valid",
			fields: model.ExtractedFields{model.FieldAmount: "50.5"},
		},
		{
			name:     "missing amount",
			fields:   model.ExtractedFields{model.FieldMerchant: "AMAZON"},
			wantErrs: []string{"amount not found in message"},
		},
		{
			name:     "negative amount",
			fields:   model.ExtractedFields{model.FieldAmount: "-50"},
			wantErrs: []string{"invalid amount format or negative value"},
		},
		{
			name:     "zero amount",
			fields:   model.ExtractedFields{model.FieldAmount: "0"},
			wantErrs: []string{"invalid amount format or negative value"},
		},
		{
			name:     "unparsable amount",
			fields:   model.ExtractedFields{model.FieldAmount: "12.34.56"},
			wantErrs: []string{"invalid amount format or negative value"},
		},
		{
			name: "merchant too short",
			fields: model.ExtractedFields{
				model.FieldAmount:   "100",
				model.FieldMerchant: "A",
			},
			wantErrs: []string{"invalid merchant name"},
		},
		{
			name: "merchant without letters",
			fields: model.ExtractedFields{
				model.FieldAmount:   "100",
				model.FieldMerchant: "12345",
			},
			wantErrs: []string{"invalid merchant name"},
		},
		{
			name:   "missing merchant is not an error",
			fields: model.ExtractedFields{model.FieldAmount: "100"},
		},
		{
			name:   "empty fields report only the amount",
			fields: model.ExtractedFields{},
			wantErrs: []string{
				"amount not found in message",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.fields)
			if len(tt.wantErrs) == 0 {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.wantErrs, errs)
		})
	}
}

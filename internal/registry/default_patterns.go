package registry

import "github.com/nmehta6/paisatrail/internal/model"

// Generic field patterns shared by most Indian banking SMS templates.
// Individual bundles override these where an institution's wording
// deviates.
const (
	genericAmount   = `(?:rs\.?|inr|₹)\s*([0-9,]+(?:\.[0-9]{1,2})?)`
	genericMerchant = `\b(?:at|to|from)\s+([A-Za-z0-9&.\- ]{2,40}?)(?:\s+(?:on|via|ref|using|thru)\b|[.,;]|$)`
	genericDate     = `([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4}(?:[ ,]+[0-9]{1,2}:[0-9]{2}(?::[0-9]{2})?)?)`
	genericType     = `\b(debited|credited|paid|received|withdrawn|deposited|transferred|spent)\b`
	genericAccount  = `(?:a/c|acct|account|card)(?:\s*(?:no|number)\.?)?\s*[:#]?\s*([xX*]*[0-9]{2,8})`
)

// IsBuiltin reports whether an id belongs to one of the built-in
// bundles. Built-ins are re-seeded on every start, so persistent
// changes to them are stored as override rows rather than deletions.
func IsBuiltin(id string) bool {
	for _, bank := range builtinBanks {
		if bank.id == id {
			return true
		}
	}
	return false
}

var builtinBanks = []struct {
	id          string
	institution string
	sender      string
}{
	{"builtin-hdfc", "HDFC Bank", `HDFC`},
	{"builtin-icici", "ICICI Bank", `ICICI`},
	{"builtin-sbi", "State Bank of India", `\bSBI|SBIINB|SBIPSG`},
	{"builtin-axis", "Axis Bank", `AXIS`},
	{"builtin-kotak", "Kotak Mahindra Bank", `KOTAK`},
	{"builtin-idfc", "IDFC First Bank", `IDFC`},
	{"builtin-paytm", "Paytm Payments Bank", `PAYTM|PYTM`},
	{"builtin-phonepe", "PhonePe", `PHONEPE|PHONPE`},
}

// DefaultBundles returns the built-in pattern bundles seeded into the
// registry at startup. Sender patterns match the DLT-style alphanumeric
// headers (e.g. "VK-HDFCBK") these institutions send from, so they key
// on the institution fragment rather than the full header.
func DefaultBundles() []*model.PatternBundle {
	bundles := make([]*model.PatternBundle, 0, len(builtinBanks))
	for _, bank := range builtinBanks {
		bundles = append(bundles, &model.PatternBundle{
			ID:              bank.id,
			Institution:     bank.institution,
			SenderPattern:   bank.sender,
			AmountPattern:   genericAmount,
			MerchantPattern: genericMerchant,
			DatePattern:     genericDate,
			TypePattern:     genericType,
			AccountPattern:  genericAccount,
			Active:          true,
		})
	}
	return bundles
}

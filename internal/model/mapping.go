package model

import "fmt"

// AccountMapping links a (institution, masked identifier) pair seen in
// SMS text to an internal account id. Mappings are deactivated rather
// than deleted so that historical linkage stays auditable.
type AccountMapping struct {
	ID          string
	AccountID   string
	Institution string
	Identifier  string
	Active      bool
}

// Validate ensures the mapping has valid data.
func (m *AccountMapping) Validate() error {
	if m.AccountID == "" {
		return fmt.Errorf("account id is required")
	}
	if m.Institution == "" {
		return fmt.Errorf("institution is required")
	}
	if m.Identifier == "" {
		return fmt.Errorf("account identifier is required")
	}
	return nil
}

package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies the money movement of a transaction.
type TransactionKind string

// Transaction kinds.
const (
	KindExpense     TransactionKind = "EXPENSE"
	KindIncome      TransactionKind = "INCOME"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
)

// TransactionSource marks how a transaction record came to exist.
type TransactionSource string

// Transaction sources.
const (
	SourceSMSExtracted TransactionSource = "SMS_EXTRACTED"
	SourceManual       TransactionSource = "MANUAL"
)

// ProvisionalTransaction is an extracted, not-yet-persisted transaction
// candidate. Ownership passes to the caller; the extraction core never
// stores it.
type ProvisionalTransaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	Kind        TransactionKind
	Merchant    string
	AccountID   string // empty when no mapping resolved
	Description string // original message body
	Source      TransactionSource
}

// Validate enforces the invariants a provisional transaction must hold
// before it is handed across the persistence boundary.
func (t *ProvisionalTransaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	switch t.Kind {
	case KindExpense, KindIncome, KindTransferIn, KindTransferOut:
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	return nil
}

// IsTransfer reports whether the transaction moves money between the
// user's own accounts.
func (t *ProvisionalTransaction) IsTransfer() bool {
	return t.Kind == KindTransferIn || t.Kind == KindTransferOut
}

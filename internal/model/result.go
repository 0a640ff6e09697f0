package model

import "time"

// FailureReason distinguishes the expected ways an extraction can fail.
type FailureReason string

// Failure reasons. Timeout is kept distinct so callers can tell bad
// data apart from system overload.
const (
	FailureNonFinancial       FailureReason = "NON_FINANCIAL"
	FailureUnrecognizedSender FailureReason = "UNRECOGNIZED_SENDER"
	FailureValidation         FailureReason = "VALIDATION_FAILED"
	FailureInvalidAmount      FailureReason = "INVALID_AMOUNT"
	FailureTimeout            FailureReason = "PROCESSING_TIMEOUT"
	FailureInternal           FailureReason = "INTERNAL_ERROR"
)

// Diagnostics carries the intermediate state of one extraction attempt.
// It feeds the confidence scorer and debugging output, and is discarded
// otherwise.
type Diagnostics struct {
	Fields           ExtractedFields
	PatternID        string
	Institution      string
	PatternMatched   bool
	SenderTrusted    bool
	Elapsed          time.Duration
	ValidationErrors []string
}

// ExtractionResult is the tagged outcome of running one message through
// the pipeline: either a provisional transaction with a confidence
// score, or a classified failure.
type ExtractionResult struct {
	Transaction *ProvisionalTransaction // nil on failure
	Diagnostics Diagnostics
	Reason      FailureReason // empty on success
	Detail      string        // human-readable failure detail
	Confidence  float64
	Success     bool
}

// Successf builds a success result.
func Successf(txn *ProvisionalTransaction, confidence float64, diag Diagnostics) ExtractionResult {
	return ExtractionResult{
		Success:     true,
		Transaction: txn,
		Confidence:  confidence,
		Diagnostics: diag,
	}
}

// Failuref builds a failure result.
func Failuref(reason FailureReason, detail string, confidence float64, diag Diagnostics) ExtractionResult {
	return ExtractionResult{
		Success:     false,
		Reason:      reason,
		Detail:      detail,
		Confidence:  confidence,
		Diagnostics: diag,
	}
}

// Package engine implements the extraction pipeline that turns raw SMS
// messages into provisional transactions, and the batch/stream
// processor that drives it at volume.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nmehta6/paisatrail/internal/accounts"
	"github.com/nmehta6/paisatrail/internal/builder"
	"github.com/nmehta6/paisatrail/internal/extract"
	"github.com/nmehta6/paisatrail/internal/model"
	"github.com/nmehta6/paisatrail/internal/registry"
	"github.com/nmehta6/paisatrail/internal/score"
)

// Failure confidence levels. An unrecognized sender or a blown-up stage
// keeps residual trust above zero; a message with no financial keywords
// gets none.
const (
	confidenceNonFinancial = 0.0
	confidenceNoPattern    = 0.1
	confidenceValidation   = 0.2
	confidenceBadAmount    = 0.1
	confidenceInternal     = 0.1
)

// financialKeywords is the cheap pre-filter: a body containing none of
// these is rejected before any pattern work happens.
var financialKeywords = []string{
	"debited", "credited", "paid", "received", "transfer", "transaction",
	"amount", "balance", "account", "card", "upi", "payment",
}

// Pipeline is the extraction orchestrator. It is stateless apart from
// its registry and mapping service references, so running the same
// message twice yields the same result.
type Pipeline struct {
	registry *registry.Registry
	accounts *accounts.MappingService
}

// NewPipeline creates an orchestrator over the given registry and
// account mapping service.
func NewPipeline(reg *registry.Registry, acc *accounts.MappingService) *Pipeline {
	return &Pipeline{registry: reg, accounts: acc}
}

// Process runs one message through pre-filter, pattern lookup,
// extraction, validation, building and scoring. It never returns an
// error and never panics across its boundary: every expected failure
// mode comes back as a failure result, and an unexpected panic in any
// stage is converted into one.
func (p *Pipeline) Process(ctx context.Context, msg model.RawMessage) (result model.ExtractionResult) {
	start := time.Now()
	diag := model.Diagnostics{Fields: model.ExtractedFields{}}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("extraction stage panicked", "sender", msg.Sender, "panic", r)
			diag.Elapsed = time.Since(start)
			result = model.Failuref(model.FailureInternal,
				fmt.Sprintf("unexpected error: %v", r), confidenceInternal, diag)
		}
	}()

	// Received -> PreFiltered
	if !looksFinancial(msg.Body) {
		diag.Elapsed = time.Since(start)
		return model.Failuref(model.FailureNonFinancial,
			"no financial keywords in message", confidenceNonFinancial, diag)
	}
	if res, timedOut := p.deadlineCheck(ctx, start, &diag); timedOut {
		return res
	}

	// PreFiltered -> PatternMatched
	bundle := p.registry.FindBySender(msg.Sender)
	if bundle == nil {
		diag.Elapsed = time.Since(start)
		return model.Failuref(model.FailureUnrecognizedSender,
			fmt.Sprintf("no pattern registered for sender %q", msg.Sender),
			confidenceNoPattern, diag)
	}
	diag.PatternID = bundle.ID
	diag.Institution = bundle.Institution
	diag.PatternMatched = true
	diag.SenderTrusted = true

	// PatternMatched -> FieldsExtracted. Best-effort, never fails.
	diag.Fields = extract.Extract(msg.Body, bundle)
	if res, timedOut := p.deadlineCheck(ctx, start, &diag); timedOut {
		return res
	}

	// FieldsExtracted -> Validated
	if errs := extract.Validate(diag.Fields); len(errs) > 0 {
		diag.ValidationErrors = errs
		diag.Elapsed = time.Since(start)
		return model.Failuref(model.FailureValidation,
			strings.Join(errs, "; "), confidenceValidation, diag)
	}

	// Validated -> Built
	accountID := p.resolveAccount(bundle.Institution, diag.Fields)
	txn, err := builder.Build(diag.Fields, msg, accountID)
	if err != nil {
		diag.Elapsed = time.Since(start)
		return model.Failuref(model.FailureInvalidAmount, err.Error(), confidenceBadAmount, diag)
	}

	// Built -> Scored -> Success. The result is returned regardless of
	// the score; the minimum-confidence threshold is caller policy.
	diag.Elapsed = time.Since(start)
	confidence := score.Score(score.FactorsFromDiagnostics(diag))

	slog.Debug("extraction succeeded",
		"institution", bundle.Institution,
		"kind", txn.Kind,
		"confidence", confidence,
		"elapsed", diag.Elapsed)

	return model.Successf(txn, confidence, diag)
}

// deadlineCheck implements cooperative cancellation between stages so a
// per-message timeout aborts only this message's work.
func (p *Pipeline) deadlineCheck(ctx context.Context, start time.Time, diag *model.Diagnostics) (model.ExtractionResult, bool) {
	if ctx.Err() == nil {
		return model.ExtractionResult{}, false
	}
	diag.Elapsed = time.Since(start)
	return model.Failuref(model.FailureTimeout, "processing timeout", 0.0, *diag), true
}

func (p *Pipeline) resolveAccount(institution string, fields model.ExtractedFields) string {
	identifier := fields[model.FieldAccount]
	if identifier == "" || p.accounts == nil {
		return ""
	}
	accountID, ok := p.accounts.FindAccount(institution, identifier)
	if !ok {
		return ""
	}
	return accountID
}

func looksFinancial(body string) bool {
	lower := strings.ToLower(body)
	for _, kw := range financialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

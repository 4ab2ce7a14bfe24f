package scrub

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for sanitization events.
var (
	SignalPlanBuilt     = capitan.NewSignal("scrub.plan.built", "Sanitization plan discovered and cached")
	SignalPlanFailed    = capitan.NewSignal("scrub.plan.failed", "Sanitization plan could not be built")
	SignalFieldSkipped  = capitan.NewSignal("scrub.field.skipped", "Field left unsanitized")
	SignalApplyComplete = capitan.NewSignal("scrub.apply.complete", "Record sanitized")
)

// Keys for typed event data.
var (
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeyField        = capitan.NewStringKey("field")
	KeyTransformer  = capitan.NewStringKey("transformer")
	KeyRuleCount    = capitan.NewIntKey("rule_count")
	KeyFieldCount   = capitan.NewIntKey("field_count")
	KeySkippedCount = capitan.NewIntKey("skipped_count")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
)

// emitPlanBuilt emits an event when a plan enters the cache.
func emitPlanBuilt(ctx context.Context, plan *Plan, duration time.Duration) {
	capitan.Emit(ctx, SignalPlanBuilt,
		KeyTypeName.Field(plan.typeName),
		KeyFieldCount.Field(len(plan.fields)),
		KeyRuleCount.Field(plan.Len()),
		KeyDuration.Field(duration),
	)
}

// emitPlanFailed emits an event when discovery rejects a record type.
func emitPlanFailed(ctx context.Context, typeName string, err error) {
	capitan.Error(ctx, SignalPlanFailed,
		KeyTypeName.Field(typeName),
		KeyError.Field(err),
	)
}

// emitFieldSkipped emits an event for a field whose chain was abandoned.
func emitFieldSkipped(ctx context.Context, typeName string, ferr *FieldError) {
	capitan.Error(ctx, SignalFieldSkipped,
		KeyTypeName.Field(typeName),
		KeyField.Field(ferr.Field),
		KeyTransformer.Field(ferr.Transformer),
		KeyError.Field(ferr),
	)
}

// emitApplyComplete emits an event when a record has been processed.
func emitApplyComplete(ctx context.Context, plan *Plan, skipped int, duration time.Duration) {
	capitan.Emit(ctx, SignalApplyComplete,
		KeyTypeName.Field(plan.typeName),
		KeyFieldCount.Field(len(plan.fields)),
		KeySkippedCount.Field(skipped),
		KeyDuration.Field(duration),
	)
}

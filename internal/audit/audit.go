// Package audit defines the event sink the engines report through.
// The sink is an injected collaborator, not a process-wide facade, so the
// core stays testable without a live log store. Emission is best-effort:
// a sink failure must never fail the operation that triggered it.
package audit

import (
	"context"

	"github.com/google/uuid"
)

// Event levels.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelAudit = "audit"
)

// Modules that emit events.
const (
	ModuleAuth      = "auth"
	ModuleSales     = "sales"
	ModuleInventory = "inventory"
)

// EventSink records one structured system event. meta carries free-form
// context and may be nil. actorID is nil for unauthenticated events.
type EventSink interface {
	Emit(ctx context.Context, level, module, action, message string, actorID *uuid.UUID, meta map[string]interface{})
}

type originKey struct{}

// WithOrigin stashes the request's client address into ctx so the sink can
// record it without every service threading it through explicitly.
func WithOrigin(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, originKey{}, addr)
}

// OriginFrom returns the client address recorded by WithOrigin, if any.
func OriginFrom(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(originKey{}).(string)
	return addr, ok && addr != ""
}

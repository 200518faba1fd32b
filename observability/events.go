package observability

import (
	"log/slog"

	"creatorpass/core/events"
	"creatorpass/core/types"
)

// LogEmitter forwards platform events to a structured logger.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter constructs an emitter writing to the supplied logger.
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

// Emit implements events.Emitter.
func (l *LogEmitter) Emit(evt events.Event) {
	if l == nil || evt == nil {
		return
	}
	attrs := []any{slog.String("event", evt.EventType())}
	if carrier, ok := evt.(interface{ Event() *types.Event }); ok {
		if payload := carrier.Event(); payload != nil {
			for k, v := range payload.Attributes {
				attrs = append(attrs, slog.String(k, v))
			}
		}
	}
	l.logger.Info("platform event", attrs...)
}

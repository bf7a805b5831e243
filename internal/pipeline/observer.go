package pipeline

import (
	"log/slog"
	"time"
)

// EventType represents the lifecycle phases of one conversion run
type EventType string

const (
	EventParseStart     EventType = "parse_start"
	EventParseEnd       EventType = "parse_end"
	EventAssembleEnd    EventType = "assemble_end"
	EventSerializeEnd   EventType = "serialize_end"
	EventExportEnd      EventType = "export_end"
	EventConvertFailure EventType = "convert_failure"
)

// Event is one lifecycle event, correlated by run ID.
type Event struct {
	Type      EventType
	RunID     string
	Table     string
	Timestamp time.Time
	Data      interface{} // phase-specific data (counts, paths, errors)
}

// Observer receives events at major conversion phases.
type Observer interface {
	OnEvent(event Event)
}

// LoggingObserver logs every event with structured fields.
type LoggingObserver struct {
	logger *slog.Logger
}

func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Debug("conversion_lifecycle",
		"event", event.Type,
		"run_id", event.RunID,
		"table", event.Table,
		"data", event.Data,
	)
}

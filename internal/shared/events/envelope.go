package events

import (
	"encoding/json"
	"time"
)

// Envelope is the shared event shape used across Renopick modules.
// Outbox rows persist a marshalled envelope; the worker relay republishes
// it unchanged so consumers see exactly what the producing module recorded.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAt    time.Time       `json:"occurred_at"`
	PartitionKey  string          `json:"partition_key"`
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

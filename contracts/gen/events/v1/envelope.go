package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope for cross-runtime use.
// This package is generated-contract-only and must stay backward compatible.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAt    time.Time       `json:"occurred_at"`
	PartitionKey  string          `json:"partition_key"`
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

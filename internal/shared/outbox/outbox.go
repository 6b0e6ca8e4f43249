package outbox

import "time"

// Message is an outbox row persisted alongside the state change that
// produced it. The worker relay reads pending rows in created order and
// publishes them to the message bus.
type Message struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

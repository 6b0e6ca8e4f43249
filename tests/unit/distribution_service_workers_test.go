package unit

import (
	"context"
	"testing"

	"renopick/contexts/quote-exchange/distribution-service/application/workers"
	httptransport "renopick/contexts/quote-exchange/distribution-service/transport/http"
	"renopick/internal/platform/messaging"
	"renopick/internal/shared/events"
)

func TestDistributionOutboxRelayDrainsPending(t *testing.T) {
	module := seededDistributionModule()

	if _, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{}); err != nil {
		t.Fatalf("distribution failed: %v", err)
	}

	pending, err := module.Store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want the round-started event", len(pending))
	}
	if pending[0].EventType != "distribution.round_started" {
		t.Fatalf("event type = %s", pending[0].EventType)
	}

	kafka, err := messaging.NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("kafka build failed: %v", err)
	}
	received := make(chan events.Envelope, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err = kafka.Subscribe(ctx, "distribution.round_started", "test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	relay := workers.OutboxRelay{
		Repository: module.Store,
		Publisher:  kafka,
		Topic:      "distribution.round_started",
		BatchSize:  10,
		Clock:      module.Store,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	event := <-received
	if event.EventType != "distribution.round_started" || event.PartitionKey != "project-1" {
		t.Fatalf("relayed event wrong: %+v", event)
	}

	drained, err := module.Store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(drained) != 0 {
		t.Fatalf("pending after relay = %d, want 0", len(drained))
	}
}

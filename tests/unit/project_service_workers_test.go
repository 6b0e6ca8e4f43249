package unit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	projectservice "renopick/contexts/consumer-projects/project-service"
	"renopick/contexts/consumer-projects/project-service/application/workers"
	"renopick/internal/platform/messaging"
	"renopick/internal/shared/events"
)

func TestQuoteSubmittedConsumerMarksProjectQuoted(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil, nil)

	created, err := module.Handler.CreateProjectHandler(context.Background(), "user-1", validProjectRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != "pending" {
		t.Fatalf("status = %s, want pending", created.Status)
	}

	kafka, err := messaging.NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("kafka build failed: %v", err)
	}
	consumer := workers.QuoteSubmittedConsumer{
		Subscriber: kafka,
		Repository: module.Store,
		Clock:      module.Store,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := consumer.Start(ctx); err != nil {
		t.Fatalf("consumer start failed: %v", err)
	}

	payload, err := json.Marshal(map[string]string{
		"quote_id":   "quote-1",
		"project_id": created.ID,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	err = kafka.Publish(context.Background(), "quote.submitted", events.Envelope{
		EventID:       "event-1",
		EventType:     "quote.submitted",
		SourceService: "quote-service",
		OccurredAt:    time.Now().UTC(),
		PartitionKey:  created.ID,
		SchemaVersion: 1,
		Data:          payload,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		project, err := module.Handler.GetProjectHandler(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if project.Status == "quoted" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("project status = %s, want quoted", project.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// A replay finds the project already quoted and leaves it alone.
	err = kafka.Publish(context.Background(), "quote.submitted", events.Envelope{
		EventID:      "event-1",
		EventType:    "quote.submitted",
		PartitionKey: created.ID,
		Data:         payload,
	})
	if err != nil {
		t.Fatalf("replay publish failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	project, err := module.Handler.GetProjectHandler(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if project.Status != "quoted" {
		t.Fatalf("status after replay = %s, want quoted", project.Status)
	}
}

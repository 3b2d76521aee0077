package queue

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewPublisherWithoutURLIsNop(t *testing.T) {
	t.Parallel()

	p, err := NewPublisher("", "order.created", zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(NopPublisher); !ok {
		t.Fatalf("expected NopPublisher, got %T", p)
	}
	if err := p.Publish(context.Background(), OrderCreatedEvent{}); err != nil {
		t.Fatalf("nop publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
}

func TestOrderCreatedEventJSON(t *testing.T) {
	t.Parallel()

	ev := OrderCreatedEvent{
		OrderID:   "o1",
		UserID:    "u1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Tickets:   []TicketEvent{{TicketID: "t1", FlightID: "f1", Row: 3, Seat: 4}},
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"order_id", "user_id", "created_at", "tickets"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing key %q in %s", key, raw)
		}
	}
	if got["created_at"] != "2026-03-01T12:00:00Z" {
		t.Fatalf("unexpected created_at %v", got["created_at"])
	}
}

func TestPublishToBroker(t *testing.T) {
	url := os.Getenv("TEST_AMQP_URL")
	if url == "" {
		t.Skip("TEST_AMQP_URL not set")
	}

	p, err := NewPublisher(url, "order.created.test", zap.NewNop())
	if err != nil {
		t.Skipf("broker unreachable: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, OrderCreatedEvent{OrderID: "o1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

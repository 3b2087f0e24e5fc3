package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published after a successful write.
const (
	EventDocketCreated  = "docket.created"
	EventSummaryCreated = "summary.created"
)

// FulfillmentEvent is a notification about persisted fulfillment data. Key is used
// for partitioning, e.g. the business date.
type FulfillmentEvent struct {
	ID         uuid.UUID
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    any
}

// EventPublisher delivers events to a broker. Publishing is best effort: callers log
// a failure and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, events ...FulfillmentEvent) error
}

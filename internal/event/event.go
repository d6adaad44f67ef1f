package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoutingKeyCustomerCreated = "customer.created"
	RoutingKeyCustomerUpdated = "customer.updated"
	RoutingKeyCustomerDeleted = "customer.deleted"
)

type CustomerEventPayload struct {
	CustomerID  int64      `json:"customerId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	CompanyName string     `json:"companyName"`
	TaxID       string     `json:"taxId"`
	Email       string     `json:"email"`
	CreateDate  time.Time  `json:"createDate"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type CustomerEvent struct {
	EventID   string               `json:"eventId"`
	Type      string               `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

func NewCustomerEvent(routingKey string, payload CustomerEventPayload) CustomerEvent {
	return CustomerEvent{
		EventID:   uuid.NewString(),
		Type:      routingKey,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerEvent) error
	PublishCustomerDeleted(ctx context.Context, event CustomerEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishCustomerCreated(context.Context, CustomerEvent) error { return nil }
func (NoopPublisher) PublishCustomerUpdated(context.Context, CustomerEvent) error { return nil }
func (NoopPublisher) PublishCustomerDeleted(context.Context, CustomerEvent) error { return nil }

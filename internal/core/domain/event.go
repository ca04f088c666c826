package domain

import "time"

// PaymentEventType is a type that represents the type of a payment event
type PaymentEventType string

const (
	PaymentEventTypeConfirmed PaymentEventType = "payment.confirmed"
	PaymentEventTypeFailed    PaymentEventType = "payment.failed"
	PaymentEventTypeUnknown   PaymentEventType = "unknown"
)

// PaymentEvent represents a payment notification relayed from the
// payment gateway. Delivery is at-least-once; the same EventID may
// arrive more than once.
type PaymentEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    string    `json:"order_id"`
	AmountCent int64     `json:"amount_cent"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderMigratedEvent is published once an order's files are durably in
// permanent storage, so downstream rendering/email can proceed.
type OrderMigratedEvent struct {
	OrderID       string              `json:"order_id"`
	PermanentRefs map[FileRole]string `json:"permanent_refs"`
	MigratedAt    time.Time           `json:"migrated_at"`
}

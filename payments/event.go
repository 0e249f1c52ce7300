package payments

import (
	"encoding/json"
	"fmt"
)

const (
	EventCheckoutCompleted = "checkout.completed"
	EventPaymentFailed     = "payment.failed"
)

// Event is the provider's webhook payload. Metadata echoes back what
// CreateSession attached, including the order correlation id.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		SessionID       string            `json:"sessionId"`
		PaymentIntentID string            `json:"paymentIntentId"`
		Metadata        map[string]string `json:"metadata"`
	} `json:"data"`
}

func ParseEvent(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("invalid event payload: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("event has no type")
	}
	return &event, nil
}

// CorrelationID extracts the order correlation token from the event
// metadata, or "" when absent.
func (e *Event) CorrelationID() string {
	return e.Data.Metadata["correlationId"]
}

package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderCancelled     Type = "order.cancelled"
	OrderStatusChanged Type = "order.status_changed"
	OrderUpdated       Type = "order.updated"
)

type OrderEvent struct {
	EventID        string          `json:"event_id"`
	Type           Type            `json:"type"`
	OrderID        string          `json:"order_id"`
	UserID         string          `json:"user_id"`
	Status         domain.Status   `json:"status"`
	PreviousStatus domain.Status   `json:"previous_status,omitempty"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// NewOrderEvent snapshots o. previous is empty for events that do not change status.
func NewOrderEvent(t Type, o *domain.Order, previous domain.Status) OrderEvent {
	return OrderEvent{
		EventID:        uuid.NewString(),
		Type:           t,
		OrderID:        o.ID,
		UserID:         o.OwnerID,
		Status:         o.Status,
		PreviousStatus: previous,
		TotalPrice:     o.TotalPrice,
		OccurredAt:     time.Now().UTC(),
	}
}

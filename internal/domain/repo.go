package domain

import (
	"context"
)

// OrderRepository is the persistence the order lifecycle runs on. Find* methods
// return nil, nil when nothing matches. Writes that lose a race with another
// writer (a second PENDING order, a status that changed underneath) fail with
// ErrConflict.
type OrderRepository interface {
	FindUserByID(ctx context.Context, userID string) (*User, error)
	FindActiveOrderByUser(ctx context.Context, userID string) (*Order, error)
	FindOrderByIDAndUser(ctx context.Context, orderID, userID string) (*Order, error)

	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	// ReplaceOrder cancels cancelID, which must still be PENDING, and creates
	// order in one transaction.
	ReplaceOrder(ctx context.Context, cancelID string, order *Order) (*Order, error)
	// UpdateOrder persists address, phone and comment of a PENDING order.
	UpdateOrder(ctx context.Context, order *Order) (*Order, error)
	// UpdateOrderStatus moves the order from one status to another only if it is
	// still in from.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to Status) (*Order, error)

	GetUserOrders(ctx context.Context, userID string, page PageRequest) (Paginated[*Order], error)
	GetOrdersByStatus(ctx context.Context, status Status, page PageRequest) (Paginated[*Order], error)
	SearchOrders(ctx context.Context, query string, page PageRequest) (Paginated[*Order], error)
	GetOrdersStatistics(ctx context.Context) (OrdersStatistics, error)
}

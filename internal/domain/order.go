package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type OrderLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// Subtotal is UnitPrice × Quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id"`
	Items      []OrderLine     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	TotalCount int             `json:"total_count"`
	Status     Status          `json:"status"`
	Discount   decimal.Decimal `json:"discount"`
	Promocode  string          `json:"promocode,omitempty"`
	Address    string          `json:"address,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Comment    string          `json:"comment,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Clone returns a copy that does not share the Items backing array.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = append([]OrderLine(nil), o.Items...)
	return &cp
}

// Totals returns Σ(unitPrice × quantity) and Σ quantity over lines.
func Totals(lines []OrderLine) (decimal.Decimal, int) {
	price := decimal.Zero
	count := 0
	for _, l := range lines {
		price = price.Add(l.Subtotal())
		count += l.Quantity
	}
	return price, count
}

type Paginated[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func NewPaginated[T any](items []T, total int, p PageRequest) Paginated[T] {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: pages,
	}
}

type OrdersStatistics struct {
	Total             int             `json:"total"`
	ByStatus          map[Status]int  `json:"by_status"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// CountsAsRevenue reports whether an order in status s contributes to revenue.
func CountsAsRevenue(s Status) bool {
	return s == StatusPaid || s == StatusShipped || s == StatusDelivered
}

// NewOrdersStatistics fills Total and AverageOrderValue from per-status counts
// and the revenue of PAID, SHIPPED and DELIVERED orders.
func NewOrdersStatistics(byStatus map[Status]int, revenue decimal.Decimal) OrdersStatistics {
	st := OrdersStatistics{
		ByStatus:          make(map[Status]int, len(transitions)),
		Revenue:           revenue,
		AverageOrderValue: decimal.Zero,
	}
	for s := range transitions {
		st.ByStatus[s] = 0
	}
	paying := 0
	for s, n := range byStatus {
		st.ByStatus[s] += n
		st.Total += n
		if CountsAsRevenue(s) {
			paying += n
		}
	}
	if paying > 0 {
		st.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(paying))).Round(2)
	}
	return st
}

package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/promocode"
)

var (
	_ domain.OrderRepository = (*Memory)(nil)
	_ promocode.Store        = (*Memory)(nil)
)

type memOrder struct {
	order *domain.Order
	seq   int
}

// Memory keeps users, orders and promocodes in maps behind one lock. It follows
// the Postgres repository rules, one PENDING order per user included. Values
// handed out are copies.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	orders     map[string]*memOrder
	promocodes map[string]*promocode.Promocode
	seq        int
	now        func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]*domain.User),
		orders:     make(map[string]*memOrder),
		promocodes: make(map[string]*promocode.Promocode),
		now:        time.Now,
	}
}

func (m *Memory) PutUser(u domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = &u
}

func (m *Memory) PutPromocode(p promocode.Promocode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Code = promocode.Normalize(p.Code)
	m.promocodes[p.Code] = &p
}

func (m *Memory) FindByCode(_ context.Context, code string) (*promocode.Promocode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.promocodes[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) FindActiveOrderByUser(_ context.Context, userID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mo := m.pendingOf(userID); mo != nil {
		return mo.order.Clone(), nil
	}
	return nil, nil
}

func (m *Memory) pendingOf(userID string) *memOrder {
	for _, mo := range m.orders {
		if mo.order.OwnerID == userID && mo.order.Status == domain.StatusPending {
			return mo
		}
	}
	return nil
}

func (m *Memory) FindOrderByIDAndUser(_ context.Context, orderID, userID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mo, ok := m.orders[orderID]
	if !ok || mo.order.OwnerID != userID {
		return nil, nil
	}
	return mo.order.Clone(), nil
}

func (m *Memory) CreateOrder(_ context.Context, o *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(o)
}

func (m *Memory) ReplaceOrder(_ context.Context, cancelID string, o *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.orders[cancelID]
	if !ok || old.order.Status != domain.StatusPending {
		return nil, domain.Conflict("order " + cancelID + " is no longer pending")
	}
	prevStatus, prevUpdated := old.order.Status, old.order.UpdatedAt
	old.order.Status = domain.StatusCancelled
	old.order.UpdatedAt = m.now().UTC()

	out, err := m.insert(o)
	if err != nil {
		old.order.Status, old.order.UpdatedAt = prevStatus, prevUpdated
		return nil, err
	}
	return out, nil
}

// insert must be called with the write lock held.
func (m *Memory) insert(o *domain.Order) (*domain.Order, error) {
	if o.Status == domain.StatusPending && m.pendingOf(o.OwnerID) != nil {
		return nil, domain.Conflict("user already has a pending order")
	}

	now := m.now().UTC()
	stored := o.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	m.seq++
	m.orders[stored.ID] = &memOrder{order: stored, seq: m.seq}
	if p, ok := m.promocodes[stored.Promocode]; ok && stored.Promocode != "" {
		p.UsedCount++
	}
	return stored.Clone(), nil
}

func (m *Memory) UpdateOrder(_ context.Context, o *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mo, ok := m.orders[o.ID]
	if !ok || mo.order.Status != domain.StatusPending {
		return nil, domain.Conflict("order " + o.ID + " is no longer pending")
	}
	mo.order.Address = o.Address
	mo.order.Phone = o.Phone
	mo.order.Comment = o.Comment
	mo.order.UpdatedAt = m.now().UTC()
	return mo.order.Clone(), nil
}

func (m *Memory) UpdateOrderStatus(_ context.Context, orderID string, from, to domain.Status) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mo, ok := m.orders[orderID]
	if !ok || mo.order.Status != from {
		return nil, domain.Conflict("order " + orderID + " is no longer " + string(from))
	}
	if to == domain.StatusPending {
		if p := m.pendingOf(mo.order.OwnerID); p != nil && p != mo {
			return nil, domain.Conflict("user already has a pending order")
		}
	}
	mo.order.Status = to
	mo.order.UpdatedAt = m.now().UTC()
	return mo.order.Clone(), nil
}

func (m *Memory) GetUserOrders(_ context.Context, userID string, p domain.PageRequest) (domain.Paginated[*domain.Order], error) {
	return m.page(p, func(o *domain.Order) bool { return o.OwnerID == userID }), nil
}

func (m *Memory) GetOrdersByStatus(_ context.Context, status domain.Status, p domain.PageRequest) (domain.Paginated[*domain.Order], error) {
	return m.page(p, func(o *domain.Order) bool { return o.Status == status }), nil
}

func (m *Memory) SearchOrders(_ context.Context, query string, p domain.PageRequest) (domain.Paginated[*domain.Order], error) {
	q := strings.ToLower(query)
	return m.page(p, func(o *domain.Order) bool {
		email := ""
		if u, ok := m.users[o.OwnerID]; ok {
			email = u.Email
		}
		for _, field := range []string{o.ID, o.Address, o.Phone, o.Comment, o.Promocode, email} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}), nil
}

func (m *Memory) GetOrdersStatistics(context.Context) (domain.OrdersStatistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byStatus := make(map[domain.Status]int)
	revenue := decimal.Zero
	for _, mo := range m.orders {
		byStatus[mo.order.Status]++
		if domain.CountsAsRevenue(mo.order.Status) {
			revenue = revenue.Add(mo.order.TotalPrice)
		}
	}
	return domain.NewOrdersStatistics(byStatus, revenue), nil
}

func (m *Memory) page(p domain.PageRequest, match func(*domain.Order) bool) domain.Paginated[*domain.Order] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []*memOrder
	for _, mo := range m.orders {
		if match(mo.order) {
			all = append(all, mo)
		}
	}
	sort.Slice(all, less(all, p.SortOrDefault()))

	total := len(all)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	items := make([]*domain.Order, 0, end-start)
	for _, mo := range all[start:end] {
		items = append(items, mo.order.Clone())
	}
	return domain.NewPaginated(items, total, p)
}

func less(all []*memOrder, s domain.SortOrder) func(i, j int) bool {
	newer := func(a, b *memOrder) bool {
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.After(b.order.CreatedAt)
		}
		return a.seq > b.seq
	}
	return func(i, j int) bool {
		a, b := all[i], all[j]
		switch s {
		case domain.SortOldest:
			return newer(b, a)
		case domain.SortTotalDesc:
			if c := a.order.TotalPrice.Cmp(b.order.TotalPrice); c != 0 {
				return c > 0
			}
		case domain.SortTotalAsc:
			if c := a.order.TotalPrice.Cmp(b.order.TotalPrice); c != 0 {
				return c < 0
			}
		}
		return newer(a, b)
	}
}

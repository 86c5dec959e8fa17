package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/application/invalidation"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/cache"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/events"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/observability"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/promocode"
)

//go:generate mockgen -source=service.go -destination=service_mock_test.go -package=service
//go:generate mockgen -destination=storage_mock_test.go -package=service github.com/ivan-chernow/ZaraHome-sub000/internal/domain OrderRepository

const DefaultReadTTL = 5 * time.Minute

type PromocodeValidator interface {
	ValidateAndApply(ctx context.Context, code string, amount decimal.Decimal, userID string) (promocode.Result, error)
}

type Invalidator interface {
	InvalidateOrder(ctx context.Context, orderID, userID string)
}

type Publisher interface {
	Publish(ctx context.Context, evts ...events.OrderEvent)
}

type Orders = domain.Paginated[*domain.Order]

type Service struct {
	storage     domain.OrderRepository
	cache       *cache.Store
	promocodes  PromocodeValidator
	invalidator Invalidator
	publisher   Publisher
	logger      *zap.Logger
	metrics     observability.Metrics
	readTTL     time.Duration
}

func NewService(
	storage domain.OrderRepository,
	store *cache.Store,
	promocodes PromocodeValidator,
	invalidator Invalidator,
	publisher Publisher,
	logger *zap.Logger,
	metrics observability.Metrics,
	readTTL time.Duration,
) *Service {
	if readTTL <= 0 {
		readTTL = DefaultReadTTL
	}
	return &Service{
		storage:     storage,
		cache:       store,
		promocodes:  promocodes,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		readTTL:     readTTL,
	}
}

// CreateOrder creates the user's PENDING order. If the user already has one
// with the same items it is returned untouched; if the items differ the old
// order is cancelled and replaced in one step.
func (s *Service) CreateOrder(ctx context.Context, payload domain.CreateOrderPayload, userID string) (*domain.Order, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	user, err := s.storage.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user")
	}

	active, err := s.storage.FindActiveOrderByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		if domain.SameItems(active.Items, payload.Items) {
			return s.unchanged(active), nil
		}
		if err := domain.ValidateTransition(active.Status, domain.StatusCancelled); err != nil {
			return nil, err
		}
	}

	total, count := domain.Totals(payload.Items)
	order := &domain.Order{
		OwnerID:    userID,
		Items:      payload.Items,
		TotalPrice: total,
		TotalCount: count,
		Status:     domain.StatusPending,
		Discount:   decimal.Zero,
		Address:    payload.Address,
		Phone:      payload.Phone,
		Comment:    payload.Comment,
	}
	if payload.Promocode != "" {
		s.applyPromocode(ctx, order, payload.Promocode)
	}

	var created *domain.Order
	if active == nil {
		created, err = s.storage.CreateOrder(ctx, order)
		if errors.Is(err, domain.ErrConflict) {
			// A concurrent request with the same cart won the pending slot.
			if winner, ferr := s.storage.FindActiveOrderByUser(ctx, userID); ferr == nil &&
				winner != nil && domain.SameItems(winner.Items, payload.Items) {
				return s.unchanged(winner), nil
			}
		}
	} else {
		created, err = s.storage.ReplaceOrder(ctx, active.ID, order)
	}
	if err != nil {
		s.logger.Error("Error while saving order",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	evts := make([]events.OrderEvent, 0, 2)
	if active != nil {
		s.invalidator.InvalidateOrder(ctx, active.ID, userID)
		cancelled := active.Clone()
		cancelled.Status = domain.StatusCancelled
		evts = append(evts, events.NewOrderEvent(events.OrderCancelled, cancelled, active.Status))
	}
	s.invalidator.InvalidateOrder(ctx, created.ID, userID)
	evts = append(evts, events.NewOrderEvent(events.OrderCreated, created, ""))
	s.publisher.Publish(ctx, evts...)

	fields := []zap.Field{
		zap.String("order_id", created.ID),
		zap.String("user_id", userID),
		zap.String("total_price", created.TotalPrice.String()),
		zap.Int("total_count", created.TotalCount),
	}
	if active != nil {
		s.metrics.ObserveOrderMutation(observability.MutationReplaced)
		s.logger.Info("Order replaced", append(fields, zap.String("cancelled_order_id", active.ID))...)
	} else {
		s.metrics.ObserveOrderMutation(observability.MutationCreated)
		s.logger.Info("Order created", fields...)
	}
	return created, nil
}

func (s *Service) unchanged(active *domain.Order) *domain.Order {
	s.metrics.ObserveOrderMutation(observability.MutationIdempotent)
	s.logger.Info("Order unchanged, returning active order",
		zap.String("order_id", active.ID),
		zap.String("user_id", active.OwnerID),
	)
	return active
}

// applyPromocode never fails the order: any problem leaves the full price.
func (s *Service) applyPromocode(ctx context.Context, order *domain.Order, code string) {
	res, err := s.promocodes.ValidateAndApply(ctx, code, order.TotalPrice, order.OwnerID)
	if err != nil {
		s.metrics.ObservePromocode(observability.PromocodeFailed)
		s.logger.Warn("Promocode check failed, charging full price",
			zap.Error(err),
			zap.String("promocode", code),
			zap.String("user_id", order.OwnerID),
		)
		return
	}
	if !res.IsValid || res.FinalAmount == nil || res.Discount == nil {
		s.metrics.ObservePromocode(observability.PromocodeRejected)
		s.logger.Info("Promocode not applied",
			zap.String("promocode", code),
			zap.String("user_id", order.OwnerID),
			zap.String("reason", res.Message),
		)
		return
	}

	order.TotalPrice = *res.FinalAmount
	order.Discount = *res.Discount
	order.Promocode = promocode.Normalize(code)
	s.metrics.ObservePromocode(observability.PromocodeApplied)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status, userID string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status "+string(status))
	}

	o, err := s.storage.FindOrderByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("order")
	}
	if err := domain.ValidateTransition(o.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.storage.UpdateOrderStatus(ctx, o.ID, o.Status, status)
	if err != nil {
		s.logger.Error("Error while updating order status",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
		)
		return nil, err
	}

	s.invalidator.InvalidateOrder(ctx, updated.ID, userID)
	s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderStatusChanged, updated, o.Status))
	s.metrics.ObserveOrderMutation(observability.MutationStatusChanged)
	s.logger.Info("Order status changed",
		zap.String("order_id", updated.ID),
		zap.String("user_id", userID),
		zap.String("from", string(o.Status)),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	return s.UpdateOrderStatus(ctx, orderID, domain.StatusCancelled, userID)
}

// UpdateOrder edits contact details of a PENDING order. A patch that changes
// nothing returns the order as stored.
func (s *Service) UpdateOrder(ctx context.Context, orderID string, patch domain.OrderPatch, userID string) (*domain.Order, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	o, err := s.storage.FindOrderByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("order")
	}
	if o.Status != domain.StatusPending {
		return nil, domain.Forbidden("only pending orders can be edited")
	}
	if !patch.Apply(o) {
		return o, nil
	}

	updated, err := s.storage.UpdateOrder(ctx, o)
	if err != nil {
		s.logger.Error("Error while updating order",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, err
	}

	s.invalidator.InvalidateOrder(ctx, updated.ID, userID)
	s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderUpdated, updated, ""))
	s.metrics.ObserveOrderMutation(observability.MutationUpdated)
	s.logger.Info("Order updated",
		zap.String("order_id", updated.ID),
		zap.String("user_id", userID),
	)
	return updated, nil
}

func (s *Service) GetUserOrders(ctx context.Context, userID string, p domain.PageRequest) (Orders, error) {
	if err := p.Validate(); err != nil {
		return Orders{}, err
	}
	p.Sort = p.SortOrDefault()
	return cache.Fetch(ctx, s.cache, p.Key(), func(ctx context.Context) (Orders, error) {
		return s.storage.GetUserOrders(ctx, userID, p)
	}, cache.WithPrefix(invalidation.UserOrdersPrefix(userID)), cache.WithTTL(s.readTTL))
}

// GetActiveOrder returns nil when the user has no PENDING order.
func (s *Service) GetActiveOrder(ctx context.Context, userID string) (*domain.Order, error) {
	return cache.Fetch(ctx, s.cache, userID, func(ctx context.Context) (*domain.Order, error) {
		return s.storage.FindActiveOrderByUser(ctx, userID)
	}, cache.WithPrefix(invalidation.PrefixActive), cache.WithTTL(s.readTTL))
}

// GetOrderByID returns nil when the order does not exist or belongs to someone else.
func (s *Service) GetOrderByID(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	return cache.Fetch(ctx, s.cache, userID, func(ctx context.Context) (*domain.Order, error) {
		return s.storage.FindOrderByIDAndUser(ctx, orderID, userID)
	}, cache.WithPrefix(invalidation.OrderPrefix(orderID)), cache.WithTTL(s.readTTL))
}

func (s *Service) GetOrdersByStatus(ctx context.Context, status domain.Status, p domain.PageRequest) (Orders, error) {
	if !status.Valid() {
		return Orders{}, domain.NewValidationError("status", "unknown status "+string(status))
	}
	if err := p.Validate(); err != nil {
		return Orders{}, err
	}
	p.Sort = p.SortOrDefault()
	return cache.Fetch(ctx, s.cache, invalidation.ByStatusKey(status, p), func(ctx context.Context) (Orders, error) {
		return s.storage.GetOrdersByStatus(ctx, status, p)
	}, cache.WithPrefix(invalidation.PrefixByStatus), cache.WithTTL(s.readTTL))
}

func (s *Service) SearchOrders(ctx context.Context, query string, p domain.PageRequest) (Orders, error) {
	q, err := domain.NormalizeSearch(query)
	if err != nil {
		return Orders{}, err
	}
	if err := p.Validate(); err != nil {
		return Orders{}, err
	}
	p.Sort = p.SortOrDefault()
	q = strings.ToLower(q)
	return cache.Fetch(ctx, s.cache, invalidation.SearchKey(q, p), func(ctx context.Context) (Orders, error) {
		return s.storage.SearchOrders(ctx, q, p)
	}, cache.WithPrefix(invalidation.PrefixSearch), cache.WithTTL(s.readTTL))
}

func (s *Service) GetOrdersStatistics(ctx context.Context) (domain.OrdersStatistics, error) {
	return cache.Fetch(ctx, s.cache, invalidation.StatsKey, s.storage.GetOrdersStatistics,
		cache.WithPrefix(invalidation.PrefixStats), cache.WithTTL(s.readTTL))
}

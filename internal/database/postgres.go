package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
)

var _ domain.OrderRepository = (*Repo)(nil)

const uniqueViolation = "23505"

const orderColumns = `o.id, o.user_id, o.status, o.total_price::text, o.total_count, o.discount::text,
	coalesce(o.promocode, ''), o.address, o.phone, o.comment, o.created_at, o.updated_at`

type Repo struct {
	pool   *pgxpool.Pool
	schema string
	now    func() time.Time
}

func New(pool *pgxpool.Pool, schema string) *Repo {
	return &Repo{pool: pool, schema: schema, now: time.Now}
}

func (r *Repo) qt(tbl string) string { return pgx.Identifier{r.schema, tbl}.Sanitize() }

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *Repo) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, email, name, role FROM %s WHERE id = $1
	`, r.qt("users")), userID).Scan(&u.ID, &u.Email, &u.Name, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	return &u, nil
}

func (r *Repo) FindActiveOrderByUser(ctx context.Context, userID string) (*domain.Order, error) {
	return r.findOne(ctx, r.pool, `o.user_id = $1 AND o.status = $2`, userID, domain.StatusPending)
}

func (r *Repo) FindOrderByIDAndUser(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	return r.findOne(ctx, r.pool, `o.id = $1 AND o.user_id = $2`, orderID, userID)
}

func (r *Repo) findOne(ctx context.Context, q querier, where string, args ...any) (*domain.Order, error) {
	orders, err := r.selectOrders(ctx, q, fmt.Sprintf(`
		SELECT %s FROM %s o WHERE %s LIMIT 1
	`, orderColumns, r.qt("orders"), where), args...)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return orders[0], nil
}

func (r *Repo) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	return r.inTx(ctx, func(tx pgx.Tx) (*domain.Order, error) {
		return r.insert(ctx, tx, o)
	})
}

func (r *Repo) ReplaceOrder(ctx context.Context, cancelID string, o *domain.Order) (*domain.Order, error) {
	return r.inTx(ctx, func(tx pgx.Tx) (*domain.Order, error) {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE %s SET status = $3, updated_at = $4
			WHERE id = $1 AND status = $2
		`, r.qt("orders")), cancelID, domain.StatusPending, domain.StatusCancelled, r.now().UTC())
		if err != nil {
			return nil, fmt.Errorf("cancel order %s: %w", cancelID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.Conflict("order " + cancelID + " is no longer pending")
		}
		return r.insert(ctx, tx, o)
	})
}

func (r *Repo) insert(ctx context.Context, tx pgx.Tx, o *domain.Order) (*domain.Order, error) {
	now := r.now().UTC()
	out := o.Clone()
	out.ID = uuid.NewString()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, user_id, status, total_price, total_count, discount, promocode,
		  address, phone, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12)
	`, r.qt("orders")),
		out.ID, out.OwnerID, out.Status, out.TotalPrice.String(), out.TotalCount, out.Discount.String(),
		out.Promocode, out.Address, out.Phone, out.Comment, out.CreatedAt, out.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.Conflict("user already has a pending order")
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range out.Items {
		batch.Queue(fmt.Sprintf(`
			INSERT INTO %s (order_id, position, product_id, quantity, unit_price, size, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.qt("order_items")),
			out.ID, i, it.ProductID, it.Quantity, it.UnitPrice.String(), it.Size, it.Color,
		)
	}
	if out.Promocode != "" {
		batch.Queue(fmt.Sprintf(`
			UPDATE %s SET used_count = used_count + 1 WHERE code = $1
		`, r.qt("promocodes")), out.Promocode)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("insert order items: %w", err)
	}
	return out, nil
}

func (r *Repo) UpdateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	return r.inTx(ctx, func(tx pgx.Tx) (*domain.Order, error) {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE %s SET address = $3, phone = $4, comment = $5, updated_at = $6
			WHERE id = $1 AND status = $2
		`, r.qt("orders")), o.ID, domain.StatusPending, o.Address, o.Phone, o.Comment, r.now().UTC())
		if err != nil {
			return nil, fmt.Errorf("update order %s: %w", o.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.Conflict("order " + o.ID + " is no longer pending")
		}
		return r.findOne(ctx, tx, `o.id = $1`, o.ID)
	})
}

func (r *Repo) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.Status) (*domain.Order, error) {
	return r.inTx(ctx, func(tx pgx.Tx) (*domain.Order, error) {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE %s SET status = $3, updated_at = $4
			WHERE id = $1 AND status = $2
		`, r.qt("orders")), orderID, from, to, r.now().UTC())
		if err != nil {
			return nil, fmt.Errorf("update order %s status: %w", orderID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.Conflict(fmt.Sprintf("order %s is no longer %s", orderID, from))
		}
		return r.findOne(ctx, tx, `o.id = $1`, orderID)
	})
}

func (r *Repo) GetUserOrders(ctx context.Context, userID string, p domain.PageRequest) (domain.Paginated[*domain.Order], error) {
	return r.page(ctx, `o.user_id = $1`, p, userID)
}

func (r *Repo) GetOrdersByStatus(ctx context.Context, status domain.Status, p domain.PageRequest) (domain.Paginated[*domain.Order], error) {
	return r.page(ctx, `o.status = $1`, p, status)
}

// SearchOrders matches the query against order id, contact details, comment,
// promocode and the owner's email, case-insensitively.
func (r *Repo) SearchOrders(ctx context.Context, query string, p domain.PageRequest) (domain.Paginated[*domain.Order], error) {
	where := fmt.Sprintf(`(o.id ILIKE $1 OR o.address ILIKE $1 OR o.phone ILIKE $1 OR o.comment ILIKE $1
		OR coalesce(o.promocode, '') ILIKE $1
		OR EXISTS (SELECT 1 FROM %s u WHERE u.id = o.user_id AND u.email ILIKE $1))`, r.qt("users"))
	return r.page(ctx, where, p, "%"+escapeLike(query)+"%")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *Repo) GetOrdersStatistics(ctx context.Context) (domain.OrdersStatistics, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT status, count(*), coalesce(sum(total_price), 0)::text
		FROM %s GROUP BY status
	`, r.qt("orders")))
	if err != nil {
		return domain.OrdersStatistics{}, fmt.Errorf("order statistics: %w", err)
	}
	defer rows.Close()

	byStatus := make(map[domain.Status]int)
	revenue := decimal.Zero
	for rows.Next() {
		var (
			status domain.Status
			n      int
			sum    string
		)
		if err := rows.Scan(&status, &n, &sum); err != nil {
			return domain.OrdersStatistics{}, err
		}
		byStatus[status] = n
		if domain.CountsAsRevenue(status) {
			d, err := decimal.NewFromString(sum)
			if err != nil {
				return domain.OrdersStatistics{}, fmt.Errorf("parse revenue %q: %w", sum, err)
			}
			revenue = revenue.Add(d)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.OrdersStatistics{}, err
	}
	return domain.NewOrdersStatistics(byStatus, revenue), nil
}

func orderBy(s domain.SortOrder) string {
	switch s {
	case domain.SortOldest:
		return `o.created_at ASC, o.id ASC`
	case domain.SortTotalDesc:
		return `o.total_price DESC, o.created_at DESC, o.id DESC`
	case domain.SortTotalAsc:
		return `o.total_price ASC, o.created_at DESC, o.id DESC`
	default:
		return `o.created_at DESC, o.id DESC`
	}
}

// page runs a filtered, sorted and paginated listing. The filter may only use $1.
func (r *Repo) page(ctx context.Context, where string, p domain.PageRequest, arg any) (domain.Paginated[*domain.Order], error) {
	var total int
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT count(*) FROM %s o WHERE %s
	`, r.qt("orders"), where), arg).Scan(&total); err != nil {
		return domain.Paginated[*domain.Order]{}, fmt.Errorf("count orders: %w", err)
	}

	orders, err := r.selectOrders(ctx, r.pool, fmt.Sprintf(`
		SELECT %s FROM %s o WHERE %s ORDER BY %s LIMIT $2 OFFSET $3
	`, orderColumns, r.qt("orders"), where, orderBy(p.SortOrDefault())), arg, p.Limit, p.Offset())
	if err != nil {
		return domain.Paginated[*domain.Order]{}, err
	}
	return domain.NewPaginated(orders, total, p), nil
}

func (r *Repo) selectOrders(ctx context.Context, q querier, sql string, args ...any) ([]*domain.Order, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var (
		orders []*domain.Order
		ids    []string
		byID   = make(map[string]*domain.Order)
	)
	for rows.Next() {
		var (
			o               domain.Order
			total, discount string
		)
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Status, &total, &o.TotalCount, &discount,
			&o.Promocode, &o.Address, &o.Phone, &o.Comment, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if o.TotalPrice, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total_price %q: %w", total, err)
		}
		if o.Discount, err = decimal.NewFromString(discount); err != nil {
			return nil, fmt.Errorf("parse discount %q: %w", discount, err)
		}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT order_id, product_id, quantity, unit_price::text, size, color
		FROM %s WHERE order_id = ANY($1) ORDER BY order_id, position
	`, r.qt("order_items")), ids)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID, price string
			it             domain.OrderLine
		)
		if err := itemRows.Scan(&orderID, &it.ProductID, &it.Quantity, &price, &it.Size, &it.Color); err != nil {
			return nil, err
		}
		if it.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse unit_price %q: %w", price, err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return orders, itemRows.Err()
}

func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) (*domain.Order, error)) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	o, err := fn(tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

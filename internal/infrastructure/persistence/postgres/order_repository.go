package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	domain "github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

const orderColumns = `id, customer, order_date, total_amount, status, notes, version`

type OrderRepository struct {
	q querier
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.Customer,
		&o.CreatedAt,
		&o.TotalAmount,
		&o.Status,
		&o.Notes,
		&o.Version,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	const query = `
		INSERT INTO orders (id, customer, order_date, total_amount, status, notes, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.q.Exec(ctx, query,
		order.ID,
		order.Customer,
		order.CreatedAt,
		order.TotalAmount,
		order.Status,
		order.Notes,
		order.Version,
	)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.load(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1;`, id)
}

func (r *OrderRepository) LockByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.load(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE;`, id)
}

func (r *OrderRepository) load(ctx context.Context, query, id string) (*domain.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) items(ctx context.Context, orderID string) ([]domain.Item, error) {
	const query = `
		SELECT i.id, i.order_id, i.product_id, i.quantity, p.price, p.is_available
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.created_at, i.id;
	`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.ProductAvailable,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
		UPDATE orders
		SET customer = $2, total_amount = $3, status = $4, notes = $5, version = version + 1
		WHERE id = $1 AND version = $6;
	`
	tag, err := r.q.Exec(ctx, query,
		order.ID,
		order.Customer,
		order.TotalAmount,
		order.Status,
		order.Notes,
		order.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1);`, order.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("order", order.ID)
		}
		return domain.ErrStaleOrder
	}
	order.Version++
	return nil
}

func (r *OrderRepository) AddItem(ctx context.Context, item *domain.Item) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO order_items (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4);`,
		item.ID, item.OrderID, item.ProductID, item.Quantity,
	)
	// The service checks the order under lock first, so a violation here is the product.
	if pgErrorCode(err) == codeForeignKeyViolation {
		return domain.ErrUnknownProduct
	}
	return err
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("order", id)
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, f repository.OrderFilter, page repository.Page) (repository.PageResult[domain.Order], error) {
	w := &where{}
	if f.Status != nil {
		w.add("status = $%d", string(*f.Status))
	}
	if f.Customer != "" {
		w.add("customer = $%d", f.Customer)
	}

	count, err := w.count(ctx, r.q, "orders")
	if err != nil {
		return repository.PageResult[domain.Order]{}, err
	}

	limit, args := w.page(page)
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders`+w.String()+
		` ORDER BY order_date DESC, id DESC`+limit, args...)
	if err != nil {
		return repository.PageResult[domain.Order]{}, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return repository.PageResult[domain.Order]{}, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[domain.Order]{}, err
	}
	return repository.NewPageResult(page, count, orders), nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/customer"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

type CustomerRepository struct {
	q querier
}

func uniqueUserError(err error) error {
	if pgErrorCode(err) == codeUniqueViolation {
		return customer.ErrUserHasRecord
	}
	return err
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO customers (id, user_id, phone, address) VALUES ($1, $2, $3, $4);`,
		c.ID, c.UserID, c.Phone, c.Address,
	)
	return uniqueUserError(err)
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET user_id = $2, phone = $3, address = $4 WHERE id = $1;`,
		c.ID, c.UserID, c.Phone, c.Address,
	)
	if err != nil {
		return uniqueUserError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("customer", c.ID)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, phone, address FROM customers WHERE id = $1;`, id,
	).Scan(&c.ID, &c.UserID, &c.Phone, &c.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("customer", id)
	}
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, f repository.CustomerFilter, page repository.Page) (repository.PageResult[customer.Customer], error) {
	w := &where{}
	if f.Phone != "" {
		w.add("phone = $%d", f.Phone)
	}

	count, err := w.count(ctx, r.q, "customers")
	if err != nil {
		return repository.PageResult[customer.Customer]{}, err
	}

	limit, args := w.page(page)
	rows, err := r.q.Query(ctx, `SELECT id, user_id, phone, address FROM customers`+w.String()+
		` ORDER BY created_at, id`+limit, args...)
	if err != nil {
		return repository.PageResult[customer.Customer]{}, err
	}
	defer rows.Close()

	var out []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.Phone, &c.Address); err != nil {
			return repository.PageResult[customer.Customer]{}, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[customer.Customer]{}, err
	}
	return repository.NewPageResult(page, count, out), nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

type CategoryRepository struct {
	q querier
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, name, description, is_active) VALUES ($1, $2, $3, $4);`,
		c.ID, c.Name, c.Description, c.IsActive,
	)
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE categories SET name = $2, description = $3, is_active = $4 WHERE id = $1;`,
		c.ID, c.Name, c.Description, c.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("category", c.ID)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, is_active FROM categories WHERE id = $1;`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("category", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete relies on ON DELETE SET NULL for products; the explicit UPDATE keeps
// the behaviour when the constraint was created without it.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `UPDATE products SET category_id = NULL WHERE category_id = $1;`, id); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("category", id)
	}
	return nil
}

func categoryWhere(f repository.CategoryFilter) *where {
	w := &where{}
	if f.Active != nil {
		w.add("is_active = $%d", *f.Active)
	}
	return w
}

func (r *CategoryRepository) List(ctx context.Context, f repository.CategoryFilter, page repository.Page) (repository.PageResult[catalog.Category], error) {
	w := categoryWhere(f)
	count, err := w.count(ctx, r.q, "categories")
	if err != nil {
		return repository.PageResult[catalog.Category]{}, err
	}

	limit, args := w.page(page)
	categories, err := r.query(ctx, `SELECT id, name, description, is_active FROM categories`+w.String()+
		` ORDER BY created_at, id`+limit, args...)
	if err != nil {
		return repository.PageResult[catalog.Category]{}, err
	}
	return repository.NewPageResult(page, count, categories), nil
}

func (r *CategoryRepository) ListAll(ctx context.Context, f repository.CategoryFilter) ([]catalog.Category, error) {
	w := categoryWhere(f)
	return r.query(ctx, `SELECT id, name, description, is_active FROM categories`+w.String()+
		` ORDER BY created_at, id`, w.args...)
}

func (r *CategoryRepository) query(ctx context.Context, sql string, args ...any) ([]catalog.Category, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

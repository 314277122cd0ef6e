package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

const productColumns = `id, name, description, price, category_id, is_available, preparation_time, created_at`

type ProductRepository struct {
	q querier
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.CategoryID,
		&p.IsAvailable,
		&p.PreparationTime,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func categoryFKError(err error, categoryID *string) error {
	if pgErrorCode(err) == codeForeignKeyViolation && categoryID != nil {
		return apperr.NotFound("category", *categoryID)
	}
	return err
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	const query = `
		INSERT INTO products (id, name, description, price, category_id, is_available, preparation_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.q.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.CategoryID,
		p.IsAvailable,
		p.PreparationTime,
		p.CreatedAt,
	)
	return categoryFKError(err, p.CategoryID)
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	const query = `
		UPDATE products
		SET name = $2, description = $3, price = $4, category_id = $5,
			is_available = $6, preparation_time = $7
		WHERE id = $1;
	`
	tag, err := r.q.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.CategoryID,
		p.IsAvailable,
		p.PreparationTime,
	)
	if err != nil {
		return categoryFKError(err, p.CategoryID)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("product", p.ID)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1;`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("product", id)
	}
	return p, err
}

func (r *ProductRepository) LockByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.q.Query(ctx, `SELECT id FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE;`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	locked := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		locked[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if id, ok := firstMissing(ids, locked); ok {
		return apperr.NotFound("product", id)
	}
	return nil
}

// firstMissing returns the first of ids, in request order, absent from found.
func firstMissing(ids []string, found map[string]struct{}) (string, bool) {
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return id, true
		}
	}
	return "", false
}

func (r *ProductRepository) SetAvailability(ctx context.Context, ids []string, available bool) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `UPDATE products SET is_available = $2 WHERE id = ANY($1);`, ids, available)
	return err
}

func (r *ProductRepository) IsReferenced(ctx context.Context, id string) (bool, error) {
	var referenced bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1);`, id).Scan(&referenced)
	return referenced, err
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if pgErrorCode(err) == codeForeignKeyViolation {
		return catalog.ErrProductReferenced
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("product", id)
	}
	return nil
}

func productWhere(f repository.ProductFilter) *where {
	w := &where{}
	if f.CategoryID != nil {
		w.add("category_id = $%d", *f.CategoryID)
	}
	if f.Available != nil {
		w.add("is_available = $%d", *f.Available)
	}
	if f.PriceGT != nil {
		w.add("price > $%d", *f.PriceGT)
	}
	if f.PriceLT != nil {
		w.add("price < $%d", *f.PriceLT)
	}
	return w
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter, page repository.Page) (repository.PageResult[catalog.Product], error) {
	w := productWhere(f)
	count, err := w.count(ctx, r.q, "products")
	if err != nil {
		return repository.PageResult[catalog.Product]{}, err
	}

	limit, args := w.page(page)
	products, err := r.query(ctx, `SELECT `+productColumns+` FROM products`+w.String()+
		` ORDER BY created_at DESC, id DESC`+limit, args...)
	if err != nil {
		return repository.PageResult[catalog.Product]{}, err
	}
	return repository.NewPageResult(page, count, products), nil
}

func (r *ProductRepository) ListAll(ctx context.Context, f repository.ProductFilter) ([]catalog.Product, error) {
	w := productWhere(f)
	return r.query(ctx, `SELECT `+productColumns+` FROM products`+w.String()+
		` ORDER BY created_at DESC, id DESC`, w.args...)
}

func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) ([]catalog.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

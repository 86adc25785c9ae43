package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	ListActiveProducts(ctx context.Context, categoryID string) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, productID string) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `p.id, p.name, COALESCE(p.description, ''), p.price, COALESCE(p.image_url, ''),
	p.category_id, COALESCE(c.name, ''), p.stock_quantity, p.active, p.created_at`

// ListActiveProducts returns the public storefront listing. Inactive
// products never leave the database here, whatever the filter.
func (r *PostgresRepository) ListActiveProducts(ctx context.Context, categoryID string) ([]Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.active = TRUE`
	args := []any{}
	if categoryID != "" {
		query += ` AND p.category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select active products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

// ListProducts is the admin listing: every row, active or not.
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, price, image_url, category_id, stock_quantity, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.CategoryID, p.StockQuantity, p.Active, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5,
			category_id = $6, stock_quantity = $7, active = $8
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.CategoryID, p.StockQuantity, p.Active)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), created_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.Description, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c *Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3 WHERE id = $1
	`, c.ID, c.Name, c.Description)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.CategoryID, &p.CategoryName, &p.StockQuantity, &p.Active, &p.CreatedAt)
	return p, err
}

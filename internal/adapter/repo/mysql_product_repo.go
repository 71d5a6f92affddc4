package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,COALESCE(description,''),CAST(price AS CHAR),COALESCE(image_url,''),COALESCE(category,''),created_at
FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,COALESCE(description,''),CAST(price AS CHAR),COALESCE(image_url,''),COALESCE(category,''),created_at
FROM products WHERE id=?`, id)
	return scanProduct(row)
}

func (r *MySQLProductRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO products (id,name,description,price,image_url,category,created_at)
VALUES (?,?,?,?,?,?,NOW())
`, p.ID, p.Name, p.Description, p.Price.String(), p.ImageURL, p.Category)
	return err
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE products
        SET name = ?, description = ?, price = ?, image_url = ?, category = ?
        WHERE id = ?`,
		p.Name, p.Description, p.Price.String(), p.ImageURL, p.Category, p.ID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var price string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.ImageURL, &p.Category, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// DECIMAL columns come back as strings; a bad value is a data bug we
	// want surfaced, not coerced to zero.
	p.Price, err = domain.ParsePrice(price)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)

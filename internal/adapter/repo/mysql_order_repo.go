package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

var ErrNotFound = errors.New("not found")

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Create(ctx context.Context, o *usecase.OrderRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (id,user_id,customer_name,customer_email,customer_phone,customer_address,
                    order_items,total_amount,status,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,NOW(),NOW())
`, o.ID, nullable(o.UserID), o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
		o.ItemsJSON, o.TotalAmount, o.Status)
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,COALESCE(user_id,''),customer_name,customer_email,customer_phone,customer_address,
       order_items,total_amount,status,created_at
FROM orders WHERE id=?`, id)
	return scanOrder(row)
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID string) ([]usecase.OrderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,COALESCE(user_id,''),customer_name,customer_email,customer_phone,customer_address,
       order_items,total_amount,status,created_at
FROM orders WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *MySQLOrderRepo) ListAll(ctx context.Context) ([]usecase.OrderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,COALESCE(user_id,''),customer_name,customer_email,customer_phone,customer_address,
       order_items,total_amount,status,created_at
FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id, toStatus string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, updated_at = NOW()
        WHERE id = ?`,
		toStatus, id,
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*usecase.OrderRecord, error) {
	var rec usecase.OrderRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.CustomerName, &rec.CustomerEmail,
		&rec.CustomerPhone, &rec.CustomerAddress, &rec.ItemsJSON, &rec.TotalAmount,
		&rec.Status, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func collectOrders(rows *sql.Rows) ([]usecase.OrderRecord, error) {
	var out []usecase.OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// nullable maps "" to NULL for optional foreign keys (guest checkout).
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)

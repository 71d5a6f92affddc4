package repo

import (
	"context"
	"database/sql"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

type MySQLContactRepo struct{ db *sql.DB }

func NewMySQLContactRepo(db *sql.DB) *MySQLContactRepo { return &MySQLContactRepo{db: db} }

func (r *MySQLContactRepo) Insert(ctx context.Context, m *usecase.ContactMessage) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO contact_messages (name,email,message,created_at)
VALUES (?,?,?,NOW())
`, m.Name, m.Email, m.Message)
	if err != nil {
		return err
	}
	m.ID, _ = res.LastInsertId()
	return nil
}

func (r *MySQLContactRepo) List(ctx context.Context) ([]usecase.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,email,message,created_at
FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.ContactMessage
	for rows.Next() {
		var m usecase.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ usecase.ContactRepo = (*MySQLContactRepo)(nil)

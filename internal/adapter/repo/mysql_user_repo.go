package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

var ErrEmailTaken = errors.New("email already registered")

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

func (r *MySQLUserRepo) Create(ctx context.Context, u *usecase.UserRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id,email,name,password_hash,created_at)
VALUES (?,?,?,?,NOW())
`, u.ID, u.Email, u.Name, u.PasswordHash)
	if isDuplicateKey(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *MySQLUserRepo) GetByEmail(ctx context.Context, email string) (*usecase.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,email,name,password_hash,created_at
FROM users WHERE email=?`, email)
	var rec usecase.UserRecord
	err := row.Scan(&rec.ID, &rec.Email, &rec.Name, &rec.PasswordHash, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)

package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

// MySQLAdminRepo answers the admin_users membership check: a row for the
// user id grants admin rights.
type MySQLAdminRepo struct{ db *sql.DB }

func NewMySQLAdminRepo(db *sql.DB) *MySQLAdminRepo { return &MySQLAdminRepo{db: db} }

func (r *MySQLAdminRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM admin_users WHERE user_id=?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ usecase.AdminRepo = (*MySQLAdminRepo)(nil)

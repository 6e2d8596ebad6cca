package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SessionRepo backs the sid cookie. The only session state beyond the cart is
// the admin flag set by the password gate.
type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) SetAdmin(sid string, admin bool) error {
	flag := 0
	if admin {
		flag = 1
	}
	_, err := r.db.Exec(`
	  INSERT INTO sessions(id,is_admin,last_seen)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET is_admin=excluded.is_admin,last_seen=CURRENT_TIMESTAMP
	`, sid, flag)
	return err
}

func (r *SessionRepo) IsAdmin(sid string) (bool, error) {
	var flag int
	err := r.db.Get(&flag, `SELECT is_admin FROM sessions WHERE id = ?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return flag == 1, nil
}

package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/quswhddbs/mall/internal/domain"
)

type MemberRepo struct{ DB *sqlx.DB }

func NewMemberRepo(db *sqlx.DB) *MemberRepo { return &MemberRepo{DB: db} }

func (r *MemberRepo) ByEmail(email string) (*domain.Member, error) {
	var m domain.Member
	err := r.DB.Get(&m, `SELECT id,email,nickname,social,password_hash FROM member_profile WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepo) ByID(id string) (*domain.Member, error) {
	var m domain.Member
	err := r.DB.Get(&m, `SELECT id,email,nickname,social,password_hash FROM member_profile WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepo) Create(m *domain.Member, roles ...string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO member_profile(id,email,nickname,social,password_hash) VALUES(?,?,?,?,?)`,
		m.ID, m.Email, m.Nickname, m.Social, m.Hash); err != nil {
		return err
	}
	for _, role := range roles {
		if _, err := tx.Exec(`INSERT INTO member_role(user_id,role) VALUES(?,?) ON CONFLICT(user_id,role) DO NOTHING`,
			m.ID, role); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MemberRepo) Roles(userID string) ([]string, error) {
	var roles []string
	err := r.DB.Select(&roles, `SELECT role FROM member_role WHERE user_id=? ORDER BY role`, userID)
	return roles, err
}

func (r *MemberRepo) GrantRole(userID, role string) error {
	_, err := r.DB.Exec(`INSERT INTO member_role(user_id,role) VALUES(?,?) ON CONFLICT(user_id,role) DO NOTHING`,
		userID, role)
	return err
}

func (r *MemberRepo) RevokeRole(userID, role string) error {
	_, err := r.DB.Exec(`DELETE FROM member_role WHERE user_id=? AND role=?`, userID, role)
	return err
}

// MemberWithRoles is the admin users listing row.
type MemberWithRoles struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Nickname string   `json:"nickname"`
	Social   bool     `json:"social"`
	Roles    []string `json:"roles"`
	IsAdmin  bool     `json:"isAdmin"`
}

func (r *MemberRepo) ListWithRoles() ([]MemberWithRoles, error) {
	var profiles []domain.Member
	if err := r.DB.Select(&profiles, `SELECT id,email,nickname,social,password_hash FROM member_profile ORDER BY email`); err != nil {
		return nil, err
	}

	type roleRow struct {
		UserID string `db:"user_id"`
		Role   string `db:"role"`
	}
	var rows []roleRow
	if err := r.DB.Select(&rows, `SELECT user_id, role FROM member_role`); err != nil {
		return nil, err
	}
	roleMap := map[string][]string{}
	for _, rr := range rows {
		roleMap[rr.UserID] = append(roleMap[rr.UserID], rr.Role)
	}

	out := make([]MemberWithRoles, 0, len(profiles))
	for _, p := range profiles {
		roles := roleMap[p.ID]
		if roles == nil {
			roles = []string{}
		}
		isAdmin := false
		for _, ro := range roles {
			if ro == "ADMIN" {
				isAdmin = true
			}
		}
		out = append(out, MemberWithRoles{
			ID: p.ID, Email: p.Email, Nickname: p.Nickname, Social: p.Social,
			Roles: roles, IsAdmin: isAdmin,
		})
	}
	return out, nil
}

func (r *MemberRepo) SaveRefreshToken(token, userID string, expiresAt time.Time) error {
	_, err := r.DB.Exec(`INSERT INTO refresh_token(token,user_id,expires_at) VALUES(?,?,?)`,
		token, userID, expiresAt.UTC().Format(time.RFC3339))
	return err
}

// TakeRefreshToken consumes a refresh token: it returns the owning user id and
// deletes the row, so a token can only be redeemed once.
func (r *MemberRepo) TakeRefreshToken(token string) (string, time.Time, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return "", time.Time{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var row struct {
		UserID    string `db:"user_id"`
		ExpiresAt string `db:"expires_at"`
	}
	if err := tx.Get(&row, `SELECT user_id, expires_at FROM refresh_token WHERE token=?`, token); err != nil {
		return "", time.Time{}, err
	}
	if _, err := tx.Exec(`DELETE FROM refresh_token WHERE token=?`, token); err != nil {
		return "", time.Time{}, err
	}
	if err := tx.Commit(); err != nil {
		return "", time.Time{}, err
	}
	exp, err := time.Parse(time.RFC3339, row.ExpiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return row.UserID, exp, nil
}

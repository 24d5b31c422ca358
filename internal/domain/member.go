package domain

type Member struct {
	ID       string `db:"id"`
	Email    string `db:"email"`
	Nickname string `db:"nickname"`
	Social   bool   `db:"social"`
	Hash     string `db:"password_hash"`
}

// AuthMember is the per-request resolved identity: profile plus roles.
type AuthMember struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Nickname string   `json:"nickname"`
	Social   bool     `json:"social"`
	Roles    []string `json:"roles"`
}

func (m AuthMember) HasRole(role string) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

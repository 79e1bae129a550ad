package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether s is one of the accepted role values.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin
}

type User struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Hash      string `db:"password_hash"`
	Role      string `db:"role"`
	CreatedAt int64  `db:"created_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Token is an opaque bearer credential bound to a user. Value is a random
// 128-bit identifier; CreatedAt is unix seconds at issuance and never changes.
type Token struct {
	ID        int64  `db:"id"`
	Value     string `db:"token"`
	UserID    int64  `db:"user_id"`
	CreatedAt int64  `db:"created_at"`
}

func (t *Token) IssuedAt() time.Time { return time.Unix(t.CreatedAt, 0) }

package repos

import (
	"adboard/internal/domain"

	"github.com/jmoiron/sqlx"
)

// UserRepo is the identity store: users plus the tokens bound to them.
type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(name, hash, role string, now int64) (*domain.User, error) {
	res, err := r.DB.Exec(`INSERT INTO users(name,password_hash,role,created_at) VALUES(?,?,?,?)`,
		name, hash, role, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Name: name, Hash: hash, Role: role, CreatedAt: now}, nil
}

func (r *UserRepo) ByName(name string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,name,password_hash,role,created_at FROM users WHERE name=?`, name)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,name,password_hash,role,created_at FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update rewrites only the non-nil fields.
func (r *UserRepo) Update(id int64, name, hash, role *string) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ","
		}
		set += col + "=?"
		args = append(args, v)
	}
	if name != nil {
		add("name", *name)
	}
	if hash != nil {
		add("password_hash", *hash)
	}
	if role != nil {
		add("role", *role)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.Exec(`UPDATE users SET `+set+` WHERE id=?`, args...)
	return err
}

// DeleteCascade removes a user together with their tokens and
// advertisements in one transaction. Token values stay burned: deletion
// never makes a value available for reissue (values are never generated
// from prior rows).
func (r *UserRepo) DeleteCascade(id int64) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM tokens WHERE user_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM advertisements WHERE user_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *UserRepo) InsertToken(value string, userID, now int64) (*domain.Token, error) {
	res, err := r.DB.Exec(`INSERT INTO tokens(token,user_id,created_at) VALUES(?,?,?)`,
		value, userID, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Token{ID: id, Value: value, UserID: userID, CreatedAt: now}, nil
}

// TokenWithUser resolves a presented token value to its row and owning user.
func (r *UserRepo) TokenWithUser(value string) (*domain.User, *domain.Token, error) {
	var row struct {
		TokenID      int64  `db:"token_id"`
		Token        string `db:"token"`
		TokenCreated int64  `db:"token_created"`
		UserID       int64  `db:"user_id"`
		Name         string `db:"name"`
		Hash         string `db:"password_hash"`
		Role         string `db:"role"`
		UserCreated  int64  `db:"user_created"`
	}
	err := r.DB.Get(&row, `
      SELECT t.id AS token_id, t.token, t.created_at AS token_created,
             u.id AS user_id, u.name, u.password_hash, u.role, u.created_at AS user_created
      FROM tokens t
      JOIN users u ON u.id = t.user_id
      WHERE t.token=?`, value)
	if err != nil {
		return nil, nil, err
	}
	u := &domain.User{ID: row.UserID, Name: row.Name, Hash: row.Hash, Role: row.Role, CreatedAt: row.UserCreated}
	t := &domain.Token{ID: row.TokenID, Value: row.Token, UserID: row.UserID, CreatedAt: row.TokenCreated}
	return u, t, nil
}

func (r *UserRepo) DeleteToken(value string) error {
	_, err := r.DB.Exec(`DELETE FROM tokens WHERE token=?`, value)
	return err
}

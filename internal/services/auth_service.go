package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"adboard/internal/auth"
	"adboard/internal/domain"
	"adboard/internal/repos"
)

// issueAttempts bounds regeneration when a random token value collides with
// a stored one.
const issueAttempts = 3

// AuthService owns credentials, token issuance/resolution and user accounts.
// Now and NewToken are swappable for tests; nil means real clock / uuid v4.
type AuthService struct {
	Users    *repos.UserRepo
	Hasher   *auth.Hasher
	TTL      time.Duration
	Now      func() time.Time
	NewToken func() string
}

func NewAuthService(users *repos.UserRepo, hasher *auth.Hasher, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, TTL: ttl}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) newToken() string {
	if s.NewToken != nil {
		return s.NewToken()
	}
	return uuid.NewString()
}

// Register creates an account. The role is always 'user'; elevation happens
// only through an admin update.
func (s *AuthService) Register(name, password string) (*domain.User, error) {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.Create(name, hash, domain.RoleUser, s.now().Unix())
	if repos.IsUniqueViolation(err) {
		return nil, fmt.Errorf("user %q: %w", name, ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password and, only then, issues a token. Unknown name
// and wrong password both come back as ErrInvalidCredentials; a corrupt
// stored hash additionally matches auth.ErrCorruptHash so the caller can log
// it apart.
func (s *AuthService) Login(name, password string) (*domain.Token, error) {
	u, err := s.Users.ByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	ok, err := s.Hasher.Verify(password, u.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return s.Issue(u.ID)
}

// Issue mints a fresh random token for an already-authenticated user. The
// store's UNIQUE index on the value is the collision detector; on the rare
// hit the value is regenerated.
func (s *AuthService) Issue(userID int64) (*domain.Token, error) {
	for i := 0; i < issueAttempts; i++ {
		tok, err := s.Users.InsertToken(s.newToken(), userID, s.now().Unix())
		if repos.IsUniqueViolation(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return tok, nil
	}
	return nil, ErrIssuanceFailed
}

// Resolve maps a presented token value to its identity. Valid iff the value
// exists and its age is at most TTL; age is recomputed on every call, expired
// rows are left in place. Unknown and expired are indistinguishable.
func (s *AuthService) Resolve(value string) (*domain.User, *domain.Token, error) {
	u, tok, err := s.Users.TokenWithUser(value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, err
	}
	if s.now().Sub(tok.IssuedAt()) > s.TTL {
		return nil, nil, ErrUnauthenticated
	}
	return u, tok, nil
}

// Logout deletes the presented token row. The value stays burned.
func (s *AuthService) Logout(value string) error {
	return s.Users.DeleteToken(value)
}

// Authorize is the access guard: admins may act on anything, everyone else
// only on resources they own. Pure decision, no I/O.
func Authorize(identity *domain.User, ownerID int64) error {
	if identity.IsAdmin() || identity.ID == ownerID {
		return nil
	}
	return ErrForbidden
}

// UserUpdate carries a partial account update; nil means keep.
type UserUpdate struct {
	Name     *string
	Password *string
	Role     *string
}

// UpdateUser applies the guard, then rewrites the requested fields. Role
// changes are admin-only even on one's own account.
func (s *AuthService) UpdateUser(actor *domain.User, id int64, upd UserUpdate) error {
	target, err := s.Users.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := Authorize(actor, target.ID); err != nil {
		return err
	}
	if upd.Role != nil && !actor.IsAdmin() {
		return ErrForbidden
	}
	var hash *string
	if upd.Password != nil {
		h, err := s.Hasher.Hash(*upd.Password)
		if err != nil {
			return err
		}
		hash = &h
	}
	err = s.Users.Update(id, upd.Name, hash, upd.Role)
	if repos.IsUniqueViolation(err) {
		return fmt.Errorf("user name: %w", ErrConflict)
	}
	return err
}

// DeleteUser applies the guard, then removes the account with its tokens and
// advertisements.
func (s *AuthService) DeleteUser(actor *domain.User, id int64) error {
	target, err := s.Users.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := Authorize(actor, target.ID); err != nil {
		return err
	}
	return s.Users.DeleteCascade(id)
}

// GetUser is a public read; no guard.
func (s *AuthService) GetUser(id int64) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

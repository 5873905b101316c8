package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"epms/internal/domain/payroll"
	"epms/internal/platform/querier"
)

const RoleAdmin = "admin"

// ErrRegistrationClosed is returned once an administrator exists. The
// gate is a partial unique index on the users table, so two concurrent
// registrations cannot both commit.
var ErrRegistrationClosed = errors.New("admin already exists, registration is disabled")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role
    FROM users
    WHERE username = $1
  `, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	return user, err
}

func (s *Store) AdminExists(ctx context.Context) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE role = $1", RoleAdmin).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAdmin inserts the first and only administrator. The partial
// unique index users_single_admin rejects a second insert; that
// rejection comes back as ErrRegistrationClosed.
func (s *Store) CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id
  `, username, passwordHash, RoleAdmin).Scan(&id)
	if err != nil {
		translated := payroll.TranslateStoreError(err)
		var fieldErrs payroll.FieldErrors
		if errors.As(translated, &fieldErrs) && fieldErrs.Has(payroll.KindDuplicateKey) {
			return 0, ErrRegistrationClosed
		}
		return 0, err
	}
	return id, nil
}

func (s *Store) CreateSession(ctx context.Context, userID int64, tokenHash string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (user_id, token_hash, expires_at)
    VALUES ($1, $2, $3)
  `, userID, tokenHash, expires)
	return err
}

func (s *Store) RevokeSession(ctx context.Context, userID int64, tokenHash string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE sessions SET revoked_at = now()
    WHERE user_id = $1 AND token_hash = $2
  `, userID, tokenHash)
	return err
}

func (s *Store) SessionValid(ctx context.Context, userID int64, tokenHash string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM sessions
    WHERE user_id = $1 AND token_hash = $2 AND expires_at > now() AND revoked_at IS NULL
  `, userID, tokenHash).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsNoRows reports whether err is the pgx row-not-found sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/model"
)

const userColumns = `u.id, u.username, u.display_name, u.email, u.password_hash, u.bio, u.profile_image_url, u.created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// userFields returns scan targets for userColumns.
func userFields(u *model.User, image *sql.NullString) []any {
	return []any{&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.PasswordHash, &u.Bio, image, &u.CreatedAt}
}

// CreateUser inserts user with a fresh ID. A duplicate username or email
// yields apperror.Taken.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, display_name, email, password_hash, bio, profile_image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.DisplayName,
		user.Email,
		user.PasswordHash,
		user.Bio,
		nullable(user.ProfileImageURL),
		user.CreatedAt,
	)
	switch {
	case isUniqueViolation(err, "users.username"):
		return apperror.Taken("username")
	case isUniqueViolation(err, "users.email"):
		return apperror.Taken("email")
	case err != nil:
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}
	return nil
}

// GetUserByID returns apperror.ErrNotFound if no user has id.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, "u.id = ?", id)
}

// GetUserByEmail returns apperror.ErrNotFound if no user has email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, "u.email = ?", email)
}

func (db *DB) getUser(ctx context.Context, where string, arg string) (*model.User, error) {
	var u model.User
	var image sql.NullString

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users u WHERE `+where, arg,
	).Scan(userFields(&u, &image)...)
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("user", arg)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", arg, err)
	}
	u.ProfileImageURL = ptr(image)
	return &u, nil
}

// DeleteUser removes the user and everything they own or authored.
func (db *DB) DeleteUser(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return deleteUserTx(ctx, tx, id)
	})
}

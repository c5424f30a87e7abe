package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.Version)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "users_username_key" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// usernameTaken reports whether a user with this username already exists. The
// UNIQUE constraint on the column remains the backstop for concurrent inserts.
func (m *DBModel) usernameTaken(ctx context.Context, username string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var taken bool
	err := m.db.QueryRowContext(ctx, query, username).Scan(&taken)
	if err != nil {
		return false, err
	}

	return taken, nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, email, password, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) getUserById(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, email, version
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUsers returns all users with their owned blogs populated. The password
// hash is deliberately not selected.
func (m *DBModel) getUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT u.id, u.username, u.name, u.email, u.version, b.id, b.title, b.author, b.url
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		ORDER BY u.id, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		var blogId sql.NullInt64
		var title, author, url sql.NullString

		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Version, &blogId, &title, &author, &url)
		if err != nil {
			return nil, err
		}

		if len(users) == 0 || users[len(users)-1].ID != u.ID {
			u.Blogs = []BlogRef{}
			users = append(users, u)
		}

		if blogId.Valid {
			last := &users[len(users)-1]
			last.Blogs = append(last.Blogs, BlogRef{
				ID:     int(blogId.Int64),
				Title:  title.String,
				Author: author.String,
				URL:    url.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *DBModel) deleteAllUsers(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM users")
	return err
}

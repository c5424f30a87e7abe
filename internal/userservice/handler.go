package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/tomihal/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid username or password")
	ErrMissingCredentials    = errors.New("username of password is missing")
	ErrPasswordTooShort      = errors.New("password should contain at least 3 symbols")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, secret string) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		secret: []byte(secret),
	}
}

// RegisterUser runs the registration gate, hashes the password and persists
// the new account. When an email address is given a user.registered event is
// published so the welcome mail goes out asynchronously.
func (s *UserService) RegisterUser(ctx context.Context, username, name, email, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if len(password) < 3 {
		return nil, ErrPasswordTooShort
	}

	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	taken, err := s.m.usernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUsername
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
		Blogs:    []BlogRef{},
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, err
	}

	if email != "" && s.mb != nil {
		data := struct {
			Email    string
			Username string
			Name     string
		}{
			Email:    u.Email,
			Username: u.Username,
			Name:     u.Name,
		}

		msg, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}

		if err := s.mb.Publish(ctx, msg, common.UserRegisteredKey, common.UserExchange); err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// Authenticate verifies the credentials and issues a signed bearer token
// bound to the user id.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, "", ErrAuthenticationFailure
		default:
			return nil, "", err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrAuthenticationFailure
	}

	token, err := newAuthToken(user.ID, user.Username, s.secret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUserByToken resolves the principal for a verified bearer token.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	id, err := verifyAuthToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUserById(id)); ok {
			if user, ok := cached.(*User); ok {
				return user, nil
			}
		}
	}

	user, err := s.m.getUserById(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUserById(id), user)
	}

	return user, nil
}

// GetUsers returns all user accounts with their owned blogs populated.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}

// DeleteAllUsers empties the users table (and, through the foreign key
// cascade, the blogs table). Only reachable through the test-mode reset
// endpoint.
func (s *UserService) DeleteAllUsers(ctx context.Context) error {
	if s.c != nil {
		s.c.Flush()
	}
	return s.m.deleteAllUsers(ctx)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

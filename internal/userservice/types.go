package userservice

import (
	"database/sql"
	"time"

	"github.com/tomihal/bloglist/internal/common"
)

const (
	// AccessTokenTime is the lifetime baked into issued tokens. There is no
	// server-side revocation; expiry is enforced by the token itself.
	AccessTokenTime time.Duration = 7 * 24 * time.Hour

	bcryptCost = 10
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	c      *common.Cache
	secret []byte
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id,string"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Password  Password  `json:"-"`
	Blogs     []BlogRef `json:"blogs"`
	CreatedAt time.Time `json:"-"`
	Version   int       `json:"-"`
}

// BlogRef is the owned-blog summary embedded in user listings. Ownership is
// derived by querying blogs.user_id, never stored on the user row.
type BlogRef struct {
	ID     int    `json:"id,string"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type Password struct {
	hash []byte
}

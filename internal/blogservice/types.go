package blogservice

import (
	"database/sql"
	"time"

	"github.com/tomihal/bloglist/internal/common"
)

type Blog struct {
	ID        int       `json:"id,string"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	User      Owner     `json:"user"`
	CreatedAt time.Time `json:"-"`
	Version   int       `json:"-"`
}

// Owner is the creating user as embedded in blog responses. The full user
// record (and its password hash) never travels with a blog.
type Owner struct {
	ID       int    `json:"id,string"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}

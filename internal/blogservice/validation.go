package blogservice

import (
	"github.com/tomihal/bloglist/internal/common"
)

// validateNewBlog is the creation gate: a blog needs at least one of title
// and url, and a real owner.
func validateNewBlog(v *common.Validator, req *CreateBlogRequest) {
	v.Check(req.Title != "" || req.URL != "", "title", "either title or url must be provided")
	v.Check(req.Likes >= 0, "likes", "must not be negative")
	validateInt(v, req.UserID, "user_id")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

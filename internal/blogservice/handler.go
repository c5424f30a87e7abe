package blogservice

import (
	"context"
	"database/sql"

	"github.com/tomihal/bloglist/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	UserID int    `json:"-"`
}

type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// CreateBlog persists a new blog owned by the given user. An omitted likes
// value stays at the column default of zero.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateNewBlog(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
		User:   Owner{ID: req.UserID},
	}

	if err := s.m.insert(ctx, &blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return s.m.getBlogById(ctx, blog.ID)
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		if blog, ok := cached.(*Blog); ok {
			return blog, nil
		}
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

// GetBlogs returns all blog posts with their owners populated.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogs(), blogs)

	return blogs, nil
}

// UpdateBlog overwrites the given fields of a blog post and returns the
// updated record with the owner populated.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if req.Likes != nil {
		v.Check(*req.Likes >= 0, "likes", "must not be negative")
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if _, err := s.m.updateBlog(ctx, id, req.Title, req.Author, req.URL, req.Likes); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(id))
	s.c.Delete(common.CacheKeyBlogs())

	return s.m.getBlogById(ctx, id)
}

// DeleteBlog removes a blog post owned by the given user.
func (s *BlogService) DeleteBlog(ctx context.Context, blogId, userId int) error {
	v := common.NewValidator()
	validateInt(v, blogId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteBlog(ctx, blogId, userId); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blogId))
	s.c.Delete(common.CacheKeyBlogs())

	return nil
}

// Stats aggregates the whole blog table.
func (s *BlogService) Stats(ctx context.Context) (*StatsResult, error) {
	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResult{
		TotalLikes: TotalLikes(blogs),
		Favorite:   FavoriteBlog(blogs),
		MostBlogs:  MostBlogs(blogs),
		MostLikes:  MostLikes(blogs),
	}, nil
}

// DeleteAllBlogs empties the blogs table. Only reachable through the
// test-mode reset endpoint.
func (s *BlogService) DeleteAllBlogs(ctx context.Context) error {
	s.c.Flush()
	return s.m.deleteAllBlogs(ctx)
}

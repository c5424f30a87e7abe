package blogservice

import (
	"testing"

	"github.com/tomihal/bloglist/internal/common"
)

func TestValidateNewBlog(t *testing.T) {
	testCases := []struct {
		name  string
		req   *CreateBlogRequest
		valid bool
	}{
		{name: "title and url", req: &CreateBlogRequest{Title: "T", URL: "http://example.com", UserID: 1}, valid: true},
		{name: "title only", req: &CreateBlogRequest{Title: "T", UserID: 1}, valid: true},
		{name: "url only", req: &CreateBlogRequest{URL: "http://example.com", UserID: 1}, valid: true},
		{name: "neither title nor url", req: &CreateBlogRequest{Author: "A", UserID: 1}, valid: false},
		{name: "negative likes", req: &CreateBlogRequest{Title: "T", Likes: -1, UserID: 1}, valid: false},
		{name: "missing owner", req: &CreateBlogRequest{Title: "T", URL: "http://example.com"}, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateNewBlog(v, tc.req)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

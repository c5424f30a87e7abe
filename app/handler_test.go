package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type blogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var response struct {
		Error string `json:"error"`
	}
	unmarshalResponse(t, body, &response)

	return response.Error
}

func registerAndLogin(t *testing.T, ts *testServer, username, name, password string) string {
	t.Helper()

	code, _, _ := ts.post(t, "/api/users", map[string]string{
		"username": username,
		"name":     name,
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _, body := ts.post(t, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusOK, code)

	var response struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	unmarshalResponse(t, body, &response)
	assert.NotEmpty(t, response.Token)

	return response.Token
}

func TestRegisterUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("valid registration", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/users", map[string]string{
			"username": "mluukkai",
			"name":     "Matti Luukkainen",
			"password": "salainen",
		}, nil)
		assert.Equal(t, http.StatusOK, code)

		var user struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
		}
		unmarshalResponse(t, body, &user)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "mluukkai", user.Username)
		assert.Equal(t, "Matti Luukkainen", user.Name)
		assert.NotContains(t, string(body), "password")
	})

	t.Run("missing username", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/users", map[string]string{
			"name":     "No Username",
			"password": "salainen",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "username of password is missing", errorMessage(t, body))
	})

	t.Run("missing password", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/users", map[string]string{
			"username": "nopass",
			"name":     "No Password",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "username of password is missing", errorMessage(t, body))
	})

	t.Run("short password", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/users", map[string]string{
			"username": "shortpass",
			"password": "ab",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "password should contain at least 3 symbols", errorMessage(t, body))
	})

	t.Run("short username", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/users", map[string]string{
			"username": "ab",
			"password": "salainen",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, errorMessage(t, body), "User validation failed")
	})

	t.Run("duplicate username", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/users", map[string]string{
			"username": "mluukkai",
			"name":     "Somebody Else",
			"password": "different",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "User validation failed: expected username to be unique", errorMessage(t, body))
	})
}

func TestLoginUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, _ := ts.post(t, "/api/users", map[string]string{
		"username": "mluukkai",
		"name":     "Matti Luukkainen",
		"password": "salainen",
	}, nil)
	assert.Equal(t, http.StatusOK, code)

	t.Run("correct credentials", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/login", map[string]string{
			"username": "mluukkai",
			"password": "salainen",
		}, nil)
		assert.Equal(t, http.StatusOK, code)

		var response struct {
			Token    string `json:"token"`
			Username string `json:"username"`
			Name     string `json:"name"`
		}
		unmarshalResponse(t, body, &response)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "mluukkai", response.Username)
		assert.Equal(t, "Matti Luukkainen", response.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/login", map[string]string{
			"username": "mluukkai",
			"password": "wrong",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "invalid username or password", errorMessage(t, body))
	})

	t.Run("unknown username", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/login", map[string]string{
			"username": "nosuchuser",
			"password": "salainen",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "invalid username or password", errorMessage(t, body))
	})
}

func TestCreateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "Matti Luukkainen", "salainen")

	t.Run("valid blog", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/blogs", map[string]any{
			"title":  "Go Concurrency Patterns",
			"author": "Rob Pike",
			"url":    "https://go.dev/blog/pipelines",
			"likes":  5,
		}, &token)
		assert.Equal(t, http.StatusOK, code)

		var blog blogResponse
		unmarshalResponse(t, body, &blog)
		assert.NotEmpty(t, blog.ID)
		assert.Equal(t, "Go Concurrency Patterns", blog.Title)
		assert.Equal(t, 5, blog.Likes)
		assert.Equal(t, "mluukkai", blog.User.Username)
	})

	t.Run("omitted likes defaults to zero", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/blogs", map[string]any{
			"title": "Untouched counter",
			"url":   "https://example.com/untouched",
		}, &token)
		assert.Equal(t, http.StatusOK, code)

		var blog blogResponse
		unmarshalResponse(t, body, &blog)
		assert.Equal(t, 0, blog.Likes)
	})

	t.Run("without a token", func(t *testing.T) {
		code, _, body := ts.post(t, "/api/blogs", map[string]any{
			"title": "Unauthorized",
			"url":   "https://example.com/unauthorized",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "token missing or invalid", errorMessage(t, body))
	})

	t.Run("with a garbage token", func(t *testing.T) {
		garbage := "not.a.token"
		code, _, body := ts.post(t, "/api/blogs", map[string]any{
			"title": "Unauthorized",
			"url":   "https://example.com/unauthorized",
		}, &garbage)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "token missing or invalid", errorMessage(t, body))
	})

	t.Run("missing title and url keeps the collection unchanged", func(t *testing.T) {
		code, _, before := ts.get(t, "/api/blogs", nil)
		assert.Equal(t, http.StatusOK, code)
		var blogsBefore []blogResponse
		unmarshalResponse(t, before, &blogsBefore)

		code, _, _ = ts.post(t, "/api/blogs", map[string]any{
			"author": "Nobody",
		}, &token)
		assert.Equal(t, http.StatusBadRequest, code)

		code, _, after := ts.get(t, "/api/blogs", nil)
		assert.Equal(t, http.StatusOK, code)
		var blogsAfter []blogResponse
		unmarshalResponse(t, after, &blogsAfter)
		assert.Len(t, blogsAfter, len(blogsBefore))
	})
}

func TestGetBlogHandlers(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "Matti Luukkainen", "salainen")

	code, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title": "Findable",
		"url":   "https://example.com/findable",
	}, &token)
	assert.Equal(t, http.StatusOK, code)

	var created blogResponse
	unmarshalResponse(t, body, &created)

	t.Run("list is readable without a token", func(t *testing.T) {
		code, _, body := ts.get(t, "/api/blogs", nil)
		assert.Equal(t, http.StatusOK, code)

		var blogs []blogResponse
		unmarshalResponse(t, body, &blogs)
		assert.Len(t, blogs, 1)
		assert.Equal(t, "mluukkai", blogs[0].User.Username)
	})

	t.Run("single blog by id", func(t *testing.T) {
		code, _, body := ts.get(t, "/api/blogs/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, code)

		var blog blogResponse
		unmarshalResponse(t, body, &blog)
		assert.Equal(t, created.ID, blog.ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		code, _, body := ts.get(t, "/api/blogs/abc123", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "malformatted id", errorMessage(t, body))
	})

	t.Run("missing blog", func(t *testing.T) {
		code, _, body := ts.get(t, "/api/blogs/999999", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "resource not found", errorMessage(t, body))
	})
}

func TestUpdateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "Matti Luukkainen", "salainen")

	code, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":  "Original title",
		"author": "Original author",
		"url":    "https://example.com/original",
		"likes":  3,
	}, &token)
	assert.Equal(t, http.StatusOK, code)

	var created blogResponse
	unmarshalResponse(t, body, &created)

	t.Run("update without a token", func(t *testing.T) {
		code, _, body := ts.put(t, "/api/blogs/"+created.ID, map[string]any{
			"likes": 42,
		}, nil)
		assert.Equal(t, http.StatusOK, code)

		var blog blogResponse
		unmarshalResponse(t, body, &blog)
		assert.Equal(t, 42, blog.Likes)
		assert.Equal(t, "Original title", blog.Title)
	})

	t.Run("malformed id", func(t *testing.T) {
		code, _, body := ts.put(t, "/api/blogs/abc123", map[string]any{
			"likes": 1,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "malformatted id", errorMessage(t, body))
	})

	t.Run("missing blog", func(t *testing.T) {
		code, _, body := ts.put(t, "/api/blogs/999999", map[string]any{
			"likes": 1,
		}, nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "resource not found", errorMessage(t, body))
	})
}

func TestDeleteBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ownerToken := registerAndLogin(t, ts, "mluukkai", "Matti Luukkainen", "salainen")
	otherToken := registerAndLogin(t, ts, "hellas", "Arto Hellas", "salainen")

	code, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title": "Doomed",
		"url":   "https://example.com/doomed",
	}, &ownerToken)
	assert.Equal(t, http.StatusOK, code)

	var created blogResponse
	unmarshalResponse(t, body, &created)

	t.Run("without a token", func(t *testing.T) {
		code, _, body := ts.delete(t, "/api/blogs/"+created.ID, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "token missing or invalid", errorMessage(t, body))
	})

	t.Run("non-owner", func(t *testing.T) {
		code, _, body := ts.delete(t, "/api/blogs/"+created.ID, &otherToken)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "post can be removed only by its creator", errorMessage(t, body))
	})

	t.Run("owner", func(t *testing.T) {
		code, _, body := ts.delete(t, "/api/blogs/"+created.ID, &ownerToken)
		assert.Equal(t, http.StatusNoContent, code)
		assert.Empty(t, body)

		code, _, _ = ts.get(t, "/api/blogs/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("already gone", func(t *testing.T) {
		code, _, body := ts.delete(t, "/api/blogs/"+created.ID, &ownerToken)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "resource not found", errorMessage(t, body))
	})
}

func TestGetUsersHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "Matti Luukkainen", "salainen")

	code, _, _ := ts.post(t, "/api/blogs", map[string]any{
		"title": "Owned",
		"url":   "https://example.com/owned",
	}, &token)
	assert.Equal(t, http.StatusOK, code)

	code, _, body := ts.get(t, "/api/users", nil)
	assert.Equal(t, http.StatusOK, code)

	var users []struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
		Blogs    []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"blogs"`
	}
	unmarshalResponse(t, body, &users)
	assert.Len(t, users, 1)
	assert.Equal(t, "mluukkai", users[0].Username)
	assert.Len(t, users[0].Blogs, 1)
	assert.Equal(t, "Owned", users[0].Blogs[0].Title)
	assert.NotContains(t, string(body), "password")
}

func TestBlogStatsHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "Matti Luukkainen", "salainen")

	seed := []map[string]any{
		{"title": "One", "author": "Dijkstra", "url": "https://example.com/1", "likes": 5},
		{"title": "Two", "author": "Martin", "url": "https://example.com/2", "likes": 10},
		{"title": "Three", "author": "Martin", "url": "https://example.com/3", "likes": 2},
	}
	for _, blog := range seed {
		code, _, _ := ts.post(t, "/api/blogs", blog, &token)
		assert.Equal(t, http.StatusOK, code)
	}

	code, _, body := ts.get(t, "/api/stats", nil)
	assert.Equal(t, http.StatusOK, code)

	var stats struct {
		TotalLikes int `json:"total_likes"`
		Favorite   struct {
			Title string `json:"title"`
			Likes int    `json:"likes"`
		} `json:"favorite"`
		MostBlogs struct {
			Author string `json:"author"`
			Blogs  int    `json:"blogs"`
		} `json:"most_blogs"`
		MostLikes struct {
			Author string `json:"author"`
			Likes  int    `json:"likes"`
		} `json:"most_likes"`
	}
	unmarshalResponse(t, body, &stats)
	assert.Equal(t, 17, stats.TotalLikes)
	assert.Equal(t, "Two", stats.Favorite.Title)
	assert.Equal(t, 10, stats.Favorite.Likes)
	assert.Equal(t, "Martin", stats.MostBlogs.Author)
	assert.Equal(t, 2, stats.MostBlogs.Blogs)
	assert.Equal(t, "Martin", stats.MostLikes.Author)
	assert.Equal(t, 12, stats.MostLikes.Likes)
}

func TestHealthCheckHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)

	var response struct {
		Status     string `json:"status"`
		SystemInfo struct {
			Environment string `json:"environment"`
			Version     string `json:"version"`
		} `json:"system_info"`
	}
	unmarshalResponse(t, body, &response)
	assert.Equal(t, "available", response.Status)
	assert.Equal(t, "test", response.SystemInfo.Environment)
}

func TestUnknownEndpoint(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/api/nosuchroute", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "unknown endpoint", errorMessage(t, body))
}

func TestResetTestDataHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "mluukkai", "Matti Luukkainen", "salainen")

	code, _, _ := ts.post(t, "/api/blogs", map[string]any{
		"title": "Wiped",
		"url":   "https://example.com/wiped",
	}, &token)
	assert.Equal(t, http.StatusOK, code)

	code, _, body := ts.post(t, "/api/testing/reset", nil, nil)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Empty(t, body)

	var userCount, blogCount int
	assert.NoError(t, db.QueryRow("SELECT count(*) FROM users").Scan(&userCount))
	assert.NoError(t, db.QueryRow("SELECT count(*) FROM blogs").Scan(&blogCount))
	assert.Zero(t, userCount)
	assert.Zero(t, blogCount)
}

func TestResetRouteAbsentOutsideTestMode(t *testing.T) {
	app, _ := newTestApplication(t)
	app.config.Environment = "production"
	ts := newTestServer(t, app.routes())

	code, _, body := ts.post(t, "/api/testing/reset", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "unknown endpoint", errorMessage(t, body))
}

package blogservice

// The aggregation functions below are pure: they never mutate their input and
// produce the same output for the same input order. Grouping is by the author
// string; ties go to whichever author or record was seen first.

type StatsResult struct {
	TotalLikes int         `json:"total_likes"`
	Favorite   Favorite    `json:"favorite"`
	MostBlogs  AuthorBlogs `json:"most_blogs"`
	MostLikes  AuthorLikes `json:"most_likes"`
}

type Favorite struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes across all blogs.
func TotalLikes(blogs []Blog) int {
	var total int
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog picks the blog with the most likes. For an empty input the
// zero Favorite (likes 0, no title or author) is returned.
func FavoriteBlog(blogs []Blog) Favorite {
	var best *Blog
	for i := range blogs {
		if best == nil || blogs[i].Likes > best.Likes {
			best = &blogs[i]
		}
	}

	if best == nil {
		return Favorite{}
	}

	return Favorite{Title: best.Title, Author: best.Author, Likes: best.Likes}
}

// MostBlogs finds the author appearing in the most blogs.
func MostBlogs(blogs []Blog) AuthorBlogs {
	counts := make(map[string]int)
	var order []string

	for _, b := range blogs {
		if _, ok := counts[b.Author]; !ok {
			order = append(order, b.Author)
		}
		counts[b.Author]++
	}

	var top AuthorBlogs
	for i, author := range order {
		if i == 0 || counts[author] > top.Blogs {
			top = AuthorBlogs{Author: author, Blogs: counts[author]}
		}
	}

	return top
}

// MostLikes finds the author whose blogs sum to the highest like count.
func MostLikes(blogs []Blog) AuthorLikes {
	sums := make(map[string]int)
	var order []string

	for _, b := range blogs {
		if _, ok := sums[b.Author]; !ok {
			order = append(order, b.Author)
		}
		sums[b.Author] += b.Likes
	}

	var top AuthorLikes
	for i, author := range order {
		if i == 0 || sums[author] > top.Likes {
			top = AuthorLikes{Author: author, Likes: sums[author]}
		}
	}

	return top
}

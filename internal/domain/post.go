package domain

import "time"

const PostResource = "post"

// Post is the paginated record. ID is assigned by the store and grows with CreatedAt.
type Post struct {
	ID           int64     `json:"id"`
	Author       string    `json:"author"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NewPost struct {
	Author  string `json:"author" yaml:"author"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// PostPatch holds the fields of a partial update; nil fields are left untouched.
type PostPatch struct {
	Author  *string `json:"author,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (p PostPatch) Empty() bool {
	return p.Author == nil && p.Title == nil && p.Content == nil
}

// Apply copies the non-empty patch fields onto post.
func (p PostPatch) Apply(post *Post) {
	if p.Author != nil && *p.Author != "" {
		post.Author = *p.Author
	}
	if p.Title != nil && *p.Title != "" {
		post.Title = *p.Title
	}
	if p.Content != nil && *p.Content != "" {
		post.Content = *p.Content
	}
}

package es

import (
	"time"

	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// PostDocument is the indexed form of a post; the document id is the decimal post id.
type PostDocument struct {
	ID           int64     `json:"id"`
	Author       string    `json:"author"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	IndexedAt    time.Time `json:"indexed_at"`
}

func toDocument(p domain.Post) PostDocument {
	return PostDocument{
		ID:           p.ID,
		Author:       p.Author,
		Title:        p.Title,
		Content:      p.Content,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		IndexedAt:    time.Now().UTC(),
	}
}

func (d PostDocument) toDomain() domain.Post {
	return domain.Post{
		ID:           d.ID,
		Author:       d.Author,
		Title:        d.Title,
		Content:      d.Content,
		LikeCount:    d.LikeCount,
		CommentCount: d.CommentCount,
		CreatedAt:    d.CreatedAt,
	}
}

func postMappings() *types.TypeMapping {
	author := types.NewTextProperty()
	author.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}

	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":            types.NewLongNumberProperty(),
			"author":        author,
			"title":         types.NewTextProperty(),
			"content":       types.NewTextProperty(),
			"like_count":    types.NewIntegerNumberProperty(),
			"comment_count": types.NewIntegerNumberProperty(),
			"created_at":    types.NewDateProperty(),
			"indexed_at":    types.NewDateProperty(),
		},
	}
}

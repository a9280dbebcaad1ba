package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// PostStatus is the closed set of post lifecycle states.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// DefaultPostImage is used when a post is created without an image.
const DefaultPostImage = "https://via.placeholder.com/400x300?text=Blog+Post"

// Categories is the closed set of post categories.
var Categories = []string{
	"Technology",
	"Lifestyle",
	"Travel",
	"Food",
	"Health",
	"Business",
	"Education",
	"Entertainment",
	"Sports",
	"Fashion",
	"Science",
	"Politics",
	"Other",
}

// ValidCategory reports whether c is one of the allowed categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Post represents a blog post. Like/bookmark/comment counts and the
// per-viewer flags are computed at query time from the join tables and are
// never persisted, so the stored row cannot drift from its backing lists.
type Post struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Title    string     `gorm:"not null" json:"title"`
	Content  string     `gorm:"type:text;not null" json:"content"`
	Excerpt  string     `gorm:"type:varchar(300)" json:"excerpt"`
	ImageURL string     `json:"image"`
	Category string     `gorm:"type:varchar(32);index;not null" json:"category"`
	Tags     []string   `gorm:"serializer:json" json:"tags"`
	UserID   uint       `gorm:"not null;index" json:"authorId"`
	User     User       `gorm:"foreignKey:UserID" json:"author"`
	Status   PostStatus `gorm:"type:varchar(16);index;not null;default:published" json:"status"`
	Views    int64      `gorm:"not null;default:0" json:"views"`
	ReadTime int        `gorm:"not null;default:1" json:"readTime"`
	Featured bool       `gorm:"not null;default:false;index" json:"featured"`

	// Computed at query time (SELECT aliases); read-only.
	LikesCount     int64 `gorm:"->;-:migration" json:"likesCount"`
	BookmarksCount int64 `gorm:"->;-:migration" json:"bookmarksCount"`
	CommentsCount  int64 `gorm:"->;-:migration" json:"commentsCount"`
	IsLiked        bool  `gorm:"->;-:migration" json:"isLiked"`
	IsBookmarked   bool  `gorm:"->;-:migration" json:"isBookmarked"`

	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave derives excerpt and read time on every persist: excerpt defaults
// to the leading content plus an ellipsis, read time is recomputed from the
// current content.
func (p *Post) BeforeSave(_ *gorm.DB) error {
	if p.Excerpt == "" && p.Content != "" {
		p.Excerpt = DeriveExcerpt(p.Content)
	}
	if p.Content != "" {
		p.ReadTime = ComputeReadTime(p.Content)
	}
	if p.ImageURL == "" {
		p.ImageURL = DefaultPostImage
	}
	return nil
}

// excerptRunes is the number of leading content characters used when no
// explicit excerpt is provided.
const excerptRunes = 150

// DeriveExcerpt returns the first 150 characters of content followed by an
// ellipsis.
func DeriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + "..."
}

// wordsPerMinute is the reading speed used for the read-time estimate.
const wordsPerMinute = 200

// ComputeReadTime estimates reading time in minutes, rounded up, minimum 1.
func ComputeReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

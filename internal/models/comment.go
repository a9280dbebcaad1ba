package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCommentLength bounds comment content.
const MaxCommentLength = 500

// Comment is an independently addressable entry on a post, owned by its
// author.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"postId"`
	UserID    uint           `gorm:"not null" json:"userId"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Content   string         `gorm:"type:varchar(500);not null" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package models

import "time"

// Like is a user's like on a post. One row represents both sides of the
// membership: the post's like list and the user's liked-posts set.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bookmark is a user's bookmark on a post, mirrored the same way as Like.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Follow links a follower to a followee. Self-follows are rejected before
// any write reaches this table.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followerId"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

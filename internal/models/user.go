// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account on the platform. The password hash is never
// serialized; relationship sets live in join tables (follows, likes,
// bookmarks) and are attached to read paths on demand.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(16);not null;default:user" json:"role"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`

	// Derived fields, populated on profile reads; never persisted.
	FollowersCount    int64  `gorm:"-" json:"followersCount"`
	FollowingCount    int64  `gorm:"-" json:"followingCount"`
	Followers         []User `gorm:"-" json:"followers,omitempty"`
	Following         []User `gorm:"-" json:"following,omitempty"`
	LikedPostIDs      []uint `gorm:"-" json:"likedPosts,omitempty"`
	BookmarkedPostIDs []uint `gorm:"-" json:"bookmarkedPosts,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is the subset of fields safe to embed in auth responses.
type PublicProfile struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	IsActive bool   `json:"isActive"`
}

// Public projects the user into its public profile shape.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
		IsActive: u.IsActive,
	}
}

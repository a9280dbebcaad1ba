package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	PostListKeyPrefix = "posts:list:%s"
	TokenDenyPrefix   = "deny:jti:%s"
)

const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 10 * time.Minute
	PostListTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// PostListKey identifies a cached public list page by its normalized query
// fingerprint (page, limit, category, sort and search combined).
func PostListKey(fingerprint string) string {
	return fmt.Sprintf(PostListKeyPrefix, fingerprint)
}

// TokenDenyKey marks a revoked JWT by its jti claim.
func TokenDenyKey(jti string) string {
	return fmt.Sprintf(TokenDenyPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	InvalidatePostLists(ctx)
}

// InvalidatePostLists drops every cached list page. List keys are
// fingerprint-addressed so a write anywhere invalidates them all.
func InvalidatePostLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "posts:list:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

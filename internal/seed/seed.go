package seed

import (
	"fmt"
	"math/rand"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users    int
	Posts    int
	Comments int
	// Clean truncates all domain tables before seeding.
	Clean bool
}

// DefaultOptions is a medium-sized dataset that exercises pagination.
var DefaultOptions = Options{Users: 8, Posts: 40, Comments: 120}

// Run populates the database with faked users, posts, comments and a spread
// of likes, bookmarks and follows between them.
func Run(db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		return fmt.Errorf("seed: need at least one user, got %d", opts.Users)
	}

	if opts.Clean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		author := users[i%len(users)]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}

	for i := 0; i < opts.Comments && len(posts) > 0; i++ {
		post := posts[rand.Intn(len(posts))]
		author := users[rand.Intn(len(users))]
		if _, err := factory.CreateComment(post, author); err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}

	if err := seedRelations(factory, users, posts); err != nil {
		return err
	}

	middleware.Logger.Info("seed complete",
		"users", len(users), "posts", len(posts), "comments", opts.Comments)
	return nil
}

// seedRelations gives every user a handful of likes, bookmarks and follows so
// relationship endpoints return non-empty data out of the box.
func seedRelations(factory *Factory, users []*models.User, posts []*models.Post) error {
	for _, user := range users {
		for i := 0; i < 5 && len(posts) > 0; i++ {
			if err := factory.Like(user, posts[rand.Intn(len(posts))]); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
		for i := 0; i < 3 && len(posts) > 0; i++ {
			if err := factory.Bookmark(user, posts[rand.Intn(len(posts))]); err != nil {
				return fmt.Errorf("seed bookmark: %w", err)
			}
		}
		for i := 0; i < 2; i++ {
			if err := factory.Follow(user, users[rand.Intn(len(users))]); err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}
	return nil
}

// Clean removes all domain rows. Child tables go first so foreign keys hold
// on databases that enforce them.
func Clean(db *gorm.DB) error {
	tables := []interface{}{
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("seed clean: %w", err)
		}
	}
	return nil
}

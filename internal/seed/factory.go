// Package seed creates demo data for development databases: faked users,
// posts, comments and relationship rows, plus curated YAML presets.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the login password of every seeded account.
const DemoPassword = "password123"

// Factory builds and persists domain entities with faked content.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand

	// all seeded users share one bcrypt hash; hashing per user makes
	// large seeds needlessly slow
	passwordHash string
}

func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// CreateUser persists a faked user. Overrides may adjust the generated
// record before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%s-%d@example.com", gofakeit.Username(), gofakeit.Number(100, 999)),
		Password: f.passwordHash,
		Role:     models.RoleUser,
		IsActive: true,
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a faked post by the given author, created some time in
// the past 90 days so sorted listings look lived-in.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	category := models.Categories[f.rand.Intn(len(models.Categories))]
	post := &models.Post{
		Title:    gofakeit.Sentence(6),
		Content:  gofakeit.Paragraph(3, 4, 12, "\n\n"),
		Category: category,
		Tags:     f.tags(),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		UserID:   author.ID,
		Status:   models.StatusPublished,
		Views:    int64(f.rand.Intn(500)),
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.rand.Intn(90*24)) * time.Hour).
		Add(-time.Duration(f.rand.Intn(60)) * time.Minute)

	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a faked comment on post by author.
func (f *Factory) CreateComment(post *models.Post, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  author.ID,
		Content: gofakeit.Sentence(f.rand.Intn(12) + 3),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Like inserts a like row, ignoring duplicates.
func (f *Factory) Like(user *models.User, post *models.Post) error {
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

// Bookmark inserts a bookmark row, ignoring duplicates.
func (f *Factory) Bookmark(user *models.User, post *models.Post) error {
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Bookmark{UserID: user.ID, PostID: post.ID}).Error
}

// Follow inserts a follow edge, ignoring duplicates and self-follows.
func (f *Factory) Follow(follower, followee *models.User) error {
	if follower.ID == followee.ID {
		return nil
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}).Error
}

func (f *Factory) tags() []string {
	pool := []string{"go", "webdev", "tutorial", "opinion", "news", "howto", "career", "tools", "deep-dive"}
	n := f.rand.Intn(3) + 1
	f.rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}

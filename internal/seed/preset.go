package seed

import (
	"fmt"
	"os"

	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Preset is a curated dataset loaded from YAML. Unlike the random factory
// output, presets give demos stable, recognizable content.
type Preset struct {
	Users []PresetUser `yaml:"users"`
	Posts []PresetPost `yaml:"posts"`
}

type PresetUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
}

type PresetPost struct {
	Author   string   `yaml:"author"` // email of a user in the same preset
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Status   string   `yaml:"status"`
	Featured bool     `yaml:"featured"`
}

// LoadPreset parses a preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var preset Preset
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if err := preset.validate(); err != nil {
		return nil, err
	}
	return &preset, nil
}

func (p *Preset) validate() error {
	emails := make(map[string]bool, len(p.Users))
	for i, u := range p.Users {
		if u.Email == "" || u.Name == "" {
			return fmt.Errorf("preset user %d: name and email are required", i)
		}
		emails[u.Email] = true
	}
	for i, post := range p.Posts {
		if post.Title == "" || post.Content == "" {
			return fmt.Errorf("preset post %d: title and content are required", i)
		}
		if !emails[post.Author] {
			return fmt.Errorf("preset post %q: unknown author %q", post.Title, post.Author)
		}
	}
	return nil
}

// Apply creates the preset's users and posts. Users that already exist by
// email are reused, so applying a preset twice does not duplicate accounts.
func (p *Preset) Apply(db *gorm.DB) error {
	byEmail := make(map[string]*models.User, len(p.Users))

	for _, pu := range p.Users {
		var existing models.User
		err := db.Where("email = ?", pu.Email).First(&existing).Error
		if err == nil {
			byEmail[pu.Email] = &existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("preset lookup %s: %w", pu.Email, err)
		}

		password := pu.Password
		if password == "" {
			password = DemoPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("preset hash password: %w", err)
		}

		role := models.RoleUser
		if pu.Role == string(models.RoleAdmin) {
			role = models.RoleAdmin
		}
		user := &models.User{
			Name:     pu.Name,
			Email:    pu.Email,
			Password: string(hash),
			Role:     role,
			IsActive: true,
			Bio:      pu.Bio,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("preset user %s: %w", pu.Email, err)
		}
		byEmail[pu.Email] = user
	}

	for _, pp := range p.Posts {
		author := byEmail[pp.Author]
		status := models.PostStatus(pp.Status)
		if status == "" {
			status = models.StatusPublished
		}
		post := &models.Post{
			Title:    pp.Title,
			Content:  pp.Content,
			Category: pp.Category,
			Tags:     pp.Tags,
			UserID:   author.ID,
			Status:   status,
			Featured: pp.Featured,
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("preset post %q: %w", pp.Title, err)
		}
	}
	return nil
}

package server

import (
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Bio      string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	var fieldErrs []string
	if err := validation.ValidateName(req.Name); err != nil {
		fieldErrs = append(fieldErrs, err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		fieldErrs = append(fieldErrs, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fieldErrs = append(fieldErrs, err.Error())
	}
	if err := validation.ValidateBio(req.Bio); err != nil {
		fieldErrs = append(fieldErrs, err.Error())
	}
	if len(fieldErrs) > 0 {
		return models.RespondWithError(c,
			models.NewFieldValidationError("Validation failed", fieldErrs...))
	}

	// Fast-path duplicate check; the unique index still backstops races.
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c,
			models.NewConflictError("User already exists with this email"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
		IsActive: true,
		Bio:      req.Bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.SendSuccess(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid email or password"))
	}
	if !user.IsActive {
		return models.RespondWithError(c,
			models.NewForbiddenError("Account is deactivated"))
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.SendSuccess(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout handles POST /api/auth/logout. When Redis is up the token's jti is
// written to the deny list for the remainder of its lifetime; without Redis
// the logout is a stateless acknowledgement.
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis != nil {
		if claims, err := s.parseToken(bearerToken(c)); err == nil {
			if jti, ok := claims["jti"].(string); ok && jti != "" {
				ttl := tokenLifetime
				if exp, ok := claims["exp"].(float64); ok {
					if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
						ttl = remaining
					}
				}
				s.redis.Set(c.Context(), cache.TokenDenyKey(jti), "1", ttl)
			}
		}
	}
	return models.SendSuccess(c, fiber.StatusOK, "Logged out successfully", nil)
}

// Me handles GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Current user", fiber.Map{"user": user})
}

// UpdateProfile handles PUT /api/auth/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name   string `json:"name"`
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Profile updated successfully", fiber.Map{
		"user": user.Public(),
	})
}

// ChangePassword handles PUT /api/auth/change-password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Current password is incorrect"))
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.SendSuccess(c, fiber.StatusOK, "Password changed successfully", nil)
}

// Deactivate handles DELETE /api/auth/deactivate. Accounts are flagged
// inactive, never hard deleted.
func (s *Server) Deactivate(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.SendSuccess(c, fiber.StatusOK, "Account deactivated", nil)
}

func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"name": user.Name,
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(tokenLifetime).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  generateJTI(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

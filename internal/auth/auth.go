package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/config"
	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/validation"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type SignupRequest struct {
	Body struct {
		Name     string `json:"name" doc:"Display name" required:"true" validate:"notblank"`
		Email    string `json:"email" doc:"Login email, unique" required:"true" validate:"notblank,email"`
		Password string `json:"password" doc:"Plain text password, stored hashed" required:"true" validate:"required"`
		Phone    string `json:"phone,omitempty" doc:"Contact phone number"`
	}
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" required:"true" validate:"notblank"`
		Password string `json:"password" required:"true" validate:"required"`
	}
}

type AdminLoginRequest struct {
	Body struct {
		Username string `json:"username" doc:"Admin name or email" required:"true" validate:"notblank"`
		Password string `json:"password" required:"true" validate:"required"`
	}
}

type UserResponse struct {
	Body struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
}

type LoginResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
}

type LogoutResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

type MeResponse struct {
	Body models.User
}

func (h *AuthHandler) HandleSignup(ctx context.Context, input *SignupRequest) (*UserResponse, error) {
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	email := NormalizeEmail(input.Body.Email)

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("Signup lookup failed: %v", err)
		return nil, huma.Error500InternalServerError("Failed to create user")
	}
	if count > 0 {
		return nil, huma.Error400BadRequest("User already exists with this email")
	}

	hash, err := HashPassword(input.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create user")
	}

	user := models.User{
		Name:     strings.TrimSpace(input.Body.Name),
		Email:    email,
		Password: hash,
		Phone:    input.Body.Phone,
		Role:     models.RoleCustomer,
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Printf("Signup create failed: %v", err)
		return nil, huma.Error500InternalServerError("Failed to create user")
	}

	res := &UserResponse{}
	res.Body.Message = "User created successfully"
	res.Body.User = user
	return res, nil
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	var user models.User
	err := h.db.WithContext(ctx).Where("email = ?", NormalizeEmail(input.Body.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	} else if err != nil {
		log.Printf("Login lookup failed: %v", err)
		return nil, huma.Error500InternalServerError("Login failed")
	}

	if !CheckPassword(user.Password, input.Body.Password) {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	}

	return h.loginResponse(user, "Login successful")
}

// HandleAdminLogin accepts any admin user whose email or name matches the
// username. The bootstrap admin is created by SeedAdmin, never here.
func (h *AuthHandler) HandleAdminLogin(ctx context.Context, input *AdminLoginRequest) (*LoginResponse, error) {
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Body.Username)

	var user models.User
	err := h.db.WithContext(ctx).
		Where("role = ? AND (email = ? OR name = ?)", models.RoleAdmin, NormalizeEmail(username), username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error401Unauthorized("Invalid admin credentials")
	} else if err != nil {
		log.Printf("Admin login lookup failed: %v", err)
		return nil, huma.Error500InternalServerError("Admin login failed")
	}

	if !CheckPassword(user.Password, input.Body.Password) {
		return nil, huma.Error401Unauthorized("Invalid admin credentials")
	}

	return h.loginResponse(user, "Admin login successful")
}

func (h *AuthHandler) loginResponse(user models.User, message string) (*LoginResponse, error) {
	token, err := h.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{SetCookie: h.sessionCookie(token)}
	res.Body.Message = message
	res.Body.User = user
	return res, nil
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *struct{}) (*LogoutResponse, error) {
	res := &LogoutResponse{SetCookie: h.clearedCookie()}
	res.Body.Message = "Logged out"
	return res, nil
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{}) (*MeResponse, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error401Unauthorized("Unauthorized")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch user")
	}

	return &MeResponse{Body: user}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package services

import (
	"errors"

	"github.com/sithub/sithub/internal/auth"
	"github.com/sithub/sithub/internal/config"
	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/pkg/response"
	"gorm.io/gorm"
)

// MinPasswordLength is the minimum accepted password length at registration
// and password change.
const MinPasswordLength = 6

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is the payload returned by register and login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new DEVELOPER account and returns it with a fresh
// token. Email and username must both be unused.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	if len(req.Password) < MinPasswordLength {
		return nil, response.NewBadRequest("Password must be at least 6 characters")
	}

	var existing models.User
	err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error
	if err == nil {
		return nil, response.NewConflict("User already exists with this email or username")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleDeveloper,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, Token: token}, nil
}

// Login authenticates by email and password. An unknown email is a
// not-found, a wrong password an authentication failure; the two are never
// conflated.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, response.NewUnauthorized("Invalid password")
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, Token: token}, nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	if len(req.NewPassword) < MinPasswordLength {
		return response.NewBadRequest("Password must be at least 6 characters")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("User not found")
		}
		return err
	}

	if !auth.CheckPassword(req.OldPassword, user.PasswordHash) {
		return response.NewUnauthorized("Invalid password")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	return s.db.Save(&user).Error
}

// CreateAdminIfNotExists seeds the default admin account on first startup.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@sithub.local",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	return s.db.Create(&admin).Error
}

// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/config"
	"github.com/freshpick/catalog-backend/internal/models"
	"github.com/freshpick/catalog-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login verifies admin credentials and issues a session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(req *LoginRequest) (string, error) {
	var admin models.Admin
	if err := s.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Email, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// EnsureDefaultAdmin seeds the configured admin account when no admin row
// exists yet, so a fresh deployment is immediately usable.
func (s *AuthService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := &models.Admin{Email: s.cfg.Admin.Email}
	if err := admin.SetPassword(s.cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logrus.WithField("email", admin.Email).Info("Default admin created")
	return nil
}

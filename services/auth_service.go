package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"travel-backend/config"
	"travel-backend/models"
	"travel-backend/utils"
)

// ErrInvalidCredentials is returned for any failed login, without saying
// which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     models.Admin `json:"admin"`
}

type AuthService struct {
	DB  *gorm.DB
	Cfg config.AuthConfig
}

func NewAuthService(db *gorm.DB, cfg config.AuthConfig) *AuthService {
	return &AuthService{DB: db, Cfg: cfg}
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.Cfg.JWTExpirationHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.Cfg.JWTExpirationHours) * time.Hour
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("username and password required")
	}

	var admin models.Admin
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, expires, err := utils.CreateToken(s.Cfg.JWTSecret, s.tokenTTL(), admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(&admin).UpdateColumn("last_login", now).Error; err != nil {
		return nil, err
	}
	admin.LastLogin = &now

	return &LoginResult{Token: token, ExpiresAt: expires, Admin: admin}, nil
}

// Me loads the profile of the admin a token was issued to.
func (s *AuthService) Me(ctx context.Context, adminID uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).First(&admin, adminID).Error; err != nil {
		return nil, notFound(err, "admin")
	}
	return &admin, nil
}

// Package services contains the application services. Each service owns the
// business rules for one slice of the domain and talks to the store through
// explicit, foreign-key-parameterized queries.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

// AuthService verifies credentials, issues HS256 bearer tokens and resolves
// tokens back to active users.
type AuthService struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, secret: secret, tokenTTL: tokenTTL, now: time.Now}
}

// RegisterInput is the candidate user for Register. Role and Status are only
// honored when set by an authorized caller; they default to client/pending.
type RegisterInput struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required,min=3,max=100"`
	FullName   string `json:"full_name" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"omitempty,oneof=admin manager accountant auditor data_entry client"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive suspended pending"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Department string `json:"department" validate:"omitempty,max=100"`
	CreatedBy  *uint  `json:"-"`
}

// Login verifies the credentials and returns a signed token. Only users with
// status active may authenticate; everything else is Unauthorized without
// further detail.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.ErrUnauthorized
		}
		return "", nil, err
	}
	if user.Status != models.StatusActive {
		return "", nil, apperr.ErrUnauthorized
	}
	if err := user.ComparePassword(password); err != nil {
		return "", nil, apperr.ErrUnauthorized
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user.Username, now)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Authenticate decodes and signature-verifies a bearer token, then resolves
// the subject claim to an existing active user. It runs on every protected
// request; tokens are stateless, nothing is cached between calls.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthorized
	}
	username := strings.TrimSpace(claims.Subject)
	if username == "" {
		return nil, apperr.ErrUnauthorized
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if user.Status != models.StatusActive {
		return nil, apperr.ErrUnauthorized
	}
	return &user, nil
}

// Register creates a new user. Duplicate username or email is a Conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.ErrConflict
	}

	user := models.User{
		Email:      in.Email,
		Username:   in.Username,
		FullName:   in.FullName,
		Role:       models.RoleClient,
		Status:     models.StatusPending,
		Phone:      in.Phone,
		Department: in.Department,
		CreatedBy:  in.CreatedBy,
	}
	if in.Role != "" {
		user.Role = models.UserRole(in.Role)
	}
	if in.Status != "" {
		user.Status = models.UserStatus(in.Status)
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// issueToken signs an HS256 token whose subject is the username and whose
// expiry is now + the configured lifetime.
func (s *AuthService) issueToken(username string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

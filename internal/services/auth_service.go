package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/config"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/events"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	families  *FamilyService
	publisher events.Publisher
}

func NewAuthService(db *gorm.DB, cfg *config.Config, families *FamilyService, publisher events.Publisher) *AuthService {
	return &AuthService{db: db, cfg: cfg, families: families, publisher: publisher}
}

// Register creates a user together with their default family, its "general"
// group, and owner memberships in both — one transaction.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Username == "" || req.Email == "" {
		return nil, apperr.Invalid("username and email are required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Invalid("password must be at least 8 characters")
	}

	var existing models.User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	locale := req.Locale
	if locale == "" {
		locale = "en-US"
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	user := models.User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hash),
		IsActive:       true,
		Status:         models.UserStatusActive,
		Role:           models.RoleUser,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Locale:         locale,
		Timezone:       timezone,
	}

	var family *models.Family
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		var err error
		family, err = s.families.CreateInTx(tx, user.Username+"'s family", user.ID)
		if err != nil {
			return err
		}

		return tx.Model(&user).Update("family_id", family.ID).Error
	})
	if err != nil {
		return nil, err
	}
	user.FamilyID = &family.ID

	s.publish(events.Event{
		Type:       events.TypeUserRegistered,
		UserID:     user.ID.String(),
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	})

	slog.Info("user registered", "user_id", user.ID)
	return &dto.RegisterResponse{User: user, Family: *family}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, apperr.Invalid("username or email required")
	}

	var user models.User
	query := s.db
	if req.Username != "" {
		query = query.Where("username = ?", req.Username)
	} else {
		query = query.Where("email = ?", req.Email)
	}
	if err := query.First(&user).Error; err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("account is inactive")
	}

	now := time.Now().UTC()
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := s.generateAccessToken(&user)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// RequestPasswordReset stores a hashed one-time token on the user and
// returns the raw token for delivery by the mail pipeline.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("user not found")
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)
	expiresAt := time.Now().UTC().Add(s.cfg.ResetTokenExpiry)

	err := s.db.Model(&user).Updates(map[string]interface{}{
		"reset_token":            tokenHash,
		"reset_token_expires_at": expiresAt,
	}).Error
	if err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	slog.Info("password reset token created", "user_id", user.ID)
	return rawToken, nil
}

func (s *AuthService) ConfirmPasswordReset(token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Invalid("password must be at least 8 characters")
	}

	var user models.User
	if err := s.db.First(&user, "reset_token = ?", hashToken(token)).Error; err != nil {
		return apperr.Invalid("invalid or expired token")
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return apperr.Invalid("invalid or expired token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.db.Model(&user).Updates(map[string]interface{}{
		"hashed_password":        string(hash),
		"reset_token":            nil,
		"reset_token_expires_at": nil,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	slog.Info("password reset applied", "user_id", user.ID)
	return nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		slog.Error("failed to publish event", "type", event.Type, "error", err)
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

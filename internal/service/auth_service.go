package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/notifier"
	"github.com/reservaa/hall-booking-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrFacultyExists      = errors.New("email or college id already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type Claims struct {
	FacultyID uint   `json:"faculty_id,omitempty"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// AdminCredentialStore adjudicates the administrator login. Injected so tests
// and deployments can substitute their own backing.
type AdminCredentialStore interface {
	Verify(email, password string) bool
}

// StaticAdminCredentials verifies against a single configured email and
// bcrypt hash.
type StaticAdminCredentials struct {
	Email        string
	PasswordHash string
}

func (c StaticAdminCredentials) Verify(email, password string) bool {
	if c.PasswordHash == "" || !strings.EqualFold(email, c.Email) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

type AuthConfig struct {
	JWTSecret       string
	FacultyTokenTTL time.Duration
	AdminTokenTTL   time.Duration
	AppBaseURL      string
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	CollegeID  string
}

type UpdateProfileInput struct {
	Name       *string
	Department *string
	Avatar     *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.Faculty, error)
	Login(ctx context.Context, email, password string) (string, *models.Faculty, error)
	AdminLogin(email, password string) (string, error)
	GetProfile(ctx context.Context, facultyID uint) (*models.Faculty, error)
	UpdateProfile(ctx context.Context, facultyID uint, in UpdateProfileInput) (*models.Faculty, error)
	ChangePassword(ctx context.Context, facultyID uint, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ValidateToken(token string) (*Claims, error)
}

type authService struct {
	faculty repository.FacultyRepository
	admins  AdminCredentialStore
	gateway notifier.Gateway
	config  AuthConfig
}

func NewAuthService(faculty repository.FacultyRepository, admins AdminCredentialStore, gateway notifier.Gateway, config AuthConfig) AuthService {
	if config.FacultyTokenTTL == 0 {
		config.FacultyTokenTTL = time.Hour
	}
	if config.AdminTokenTTL == 0 {
		config.AdminTokenTTL = 8 * time.Hour
	}
	return &authService{faculty: faculty, admins: admins, gateway: gateway, config: config}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.Faculty, error) {
	exists, err := s.faculty.ExistsByEmailOrCollegeID(ctx, in.Email, in.CollegeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFacultyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	faculty := &models.Faculty{
		Name:       in.Name,
		Email:      in.Email,
		Password:   string(hash),
		Department: in.Department,
		CollegeID:  in.CollegeID,
	}
	if err := s.faculty.Create(ctx, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.Faculty, error) {
	faculty, err := s.faculty.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(faculty.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(Claims{FacultyID: faculty.ID, Email: faculty.Email}, s.config.FacultyTokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, faculty, nil
}

func (s *authService) AdminLogin(email, password string) (string, error) {
	if !s.admins.Verify(email, password) {
		return "", ErrInvalidCredentials
	}
	return s.signToken(Claims{Email: email, IsAdmin: true}, s.config.AdminTokenTTL)
}

func (s *authService) GetProfile(ctx context.Context, facultyID uint) (*models.Faculty, error) {
	faculty, err := s.faculty.FindByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}
	return faculty, nil
}

func (s *authService) UpdateProfile(ctx context.Context, facultyID uint, in UpdateProfileInput) (*models.Faculty, error) {
	values := map[string]interface{}{}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		values["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Department != nil && strings.TrimSpace(*in.Department) != "" {
		values["department"] = strings.TrimSpace(*in.Department)
	}
	if in.Avatar != nil {
		values["avatar"] = *in.Avatar
	}
	if len(values) > 0 {
		if err := s.faculty.UpdateFields(ctx, facultyID, values); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, facultyID)
}

func (s *authService) ChangePassword(ctx context.Context, facultyID uint, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}
	faculty, err := s.faculty.FindByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(faculty.Password), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.faculty.UpdateFields(ctx, facultyID, map[string]interface{}{"password": string(hash)})
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	faculty, err := s.faculty.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)

	if err := s.faculty.SetResetToken(ctx, faculty.ID, token, time.Now().Add(time.Hour)); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.config.AppBaseURL, "/"), token)
	if s.gateway == nil {
		log.Printf("[AuthService] no notification gateway, reset link for %s: %s", email, resetURL)
		return nil
	}
	if err := s.gateway.PasswordReset(faculty, resetURL); err != nil {
		log.Printf("[AuthService] queue password reset for %s failed: %v", email, err)
		return ErrNotificationQueue
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}
	faculty, err := s.faculty.FindByValidResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.faculty.ResetPassword(ctx, faculty.ID, string(hash))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) signToken(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

package auth

import (
	"errors"
	"time"

	"skincare-backend/config"
	"skincare-backend/internal/models"
	"skincare-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// LoginResponse represents the structured response for login
type LoginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	userRepo  *repository.UserRepository
	blocklist *BlocklistService
	config    *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, blocklist *BlocklistService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		blocklist: blocklist,
		config:    cfg,
	}
}

func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hashedPassword),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, _, err := GenerateToken(user.ID, user.Email, s.config)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		User:  user,
		Token: token,
	}, nil
}

// VerifyToken is the single entry point for trusting a bearer token.
// Cheap local checks run first so malformed or expired tokens never
// cost a store round-trip; only a structurally valid token reaches the
// blocklist lookup.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims, err := ParseToken(tokenString, s.config)
	if err != nil {
		return nil, err
	}

	if s.blocklist.IsRevoked(claims.Jti()) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Logout revokes the current token's jti until its natural expiry.
// Success is only reported once the revocation persisted.
func (s *AuthService) Logout(claims *Claims) error {
	return s.blocklist.Revoke(claims.Jti(), claims.ExpiresAt.Time)
}

// Refresh revokes the current token and issues a fresh one for the
// same subject. The old token is unusable as soon as this returns,
// even though its exp has not passed.
func (s *AuthService) Refresh(claims *Claims) (string, error) {
	if err := s.blocklist.Revoke(claims.Jti(), claims.ExpiresAt.Time); err != nil {
		return "", err
	}

	token, newClaims, err := GenerateToken(claims.UserID, claims.Email, s.config)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("oldJti", claims.Jti()).
		Str("newJti", newClaims.Jti()).
		Msg("Token refreshed")
	return token, nil
}

func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

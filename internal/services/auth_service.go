package services

import (
	"errors"
	"strings"
	"time"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"
	"competition-leaderboard-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewAuthService(repo *repositories.Repository, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, cfg: cfg}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Authenticate(email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.repo.UserRepo.GetUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := utils.CheckPassword(password, user.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

// RegisterMember creates an auth identity together with its leaderboard
// profile, so every registered member is rankable from the start.
func (s *AuthService) RegisterMember(email, password, fullName, division string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	fullName = strings.TrimSpace(fullName)

	if fullName == "" {
		return nil, errors.New("full name is required")
	}

	if existing, _ := s.repo.UserRepo.GetUserByEmail(email); existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleMember,
	}

	err = s.repo.ProfileRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UserRepo.CreateUser(tx, user); err != nil {
			return err
		}

		profile := &models.Profile{
			ID:       uuid.New(),
			UserID:   &user.ID,
			FullName: fullName,
			Division: division,
		}
		return s.repo.ProfileRepo.CreateProfile(tx, profile)
	})
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// CreateAdmin provisions an administrator account. Admins judge requests and
// manage the log; they do not get a leaderboard profile.
func (s *AuthService) CreateAdmin(email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if existing, _ := s.repo.UserRepo.GetUserByEmail(email); existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}

	if err := s.repo.UserRepo.CreateUser(nil, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

type UserProfile struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile,omitempty"`
}

func (s *AuthService) GetUserProfile(userID string) (*UserProfile, error) {
	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	user.Password = ""

	result := &UserProfile{User: user}
	if profile, err := s.repo.ProfileRepo.GetProfileByUserID(userID); err == nil {
		result.Profile = profile
	}

	return result, nil
}

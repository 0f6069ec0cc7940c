package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/pharmasuccess/examportal/config"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the session token payload carried in the Authorization header.
type Claims struct {
	UserID   uint   `json:"user_id"`
	UserType string `json:"user_type"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(req dto.RegisterDTO) error
	Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error)
	ChangePassword(userID uint, newPassword string) error
	ParseToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

// Register creates a student account in pending state; an admin has to
// approve it before login succeeds.
func (s *authService) Register(req dto.RegisterDTO) error {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		UserType:     model.UserTypeStudent,
		Status:       model.UserStatusPending,
	}
	if err := s.userRepo.Create(user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return fmt.Errorf("creating user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Msg("Student registered, pending approval")
	return nil
}

func (s *authService) Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByEmailAndType(req.Email, req.UserType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user.Status != model.UserStatusActive {
		return nil, ErrAccountNotActive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	var userDTO dto.UserResponseDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("preparing login response: %w", err)
	}
	return &dto.LoginResponseDTO{User: userDTO, Token: token}, nil
}

func (s *authService) ChangePassword(userID uint, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.userRepo.UpdatePasswordHash(userID, string(hash))
}

func (s *authService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		UserType: user.UserType,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}

func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/savageut/scheduler-backend/internal/auth/domain"
	"github.com/savageut/scheduler-backend/internal/auth/repository"
)

const invitationTTL = 7 * 24 * time.Hour

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users    repository.UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Login checks the password and issues a signed token for the session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err == domain.ErrUserNotFound {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !user.Active {
		return "", nil, domain.ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Register redeems an invitation code and creates the user with the
// invitation's role.
func (s *AuthService) Register(ctx context.Context, code, username, password string) (*domain.User, error) {
	inv, err := s.users.GetInvitationByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if !inv.Valid(time.Now()) {
		return nil, domain.ErrInvitationInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(username),
		Email:        inv.Email,
		PasswordHash: string(hash),
		Role:         inv.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.MarkInvitationUsed(ctx, inv.ID, time.Now()); err != nil {
		return nil, err
	}
	return user, nil
}

// Invite creates a single-use signup code for an email/role pair.
func (s *AuthService) Invite(ctx context.Context, email, role string) (*domain.Invitation, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	inv := &domain.Invitation{
		Code:      uuid.NewString(),
		Email:     strings.TrimSpace(email),
		Role:      role,
		ExpiresAt: time.Now().Add(invitationTTL),
	}
	if err := s.users.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateUser provisions a user directly, bypassing invitations. Used by the
// admin CLI to seed the first account.
func (s *AuthService) CreateUser(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) SetUserActive(ctx context.Context, id int64, active bool) error {
	return s.users.SetActive(ctx, id, active)
}

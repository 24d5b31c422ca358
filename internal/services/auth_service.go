package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	"github.com/quswhddbs/mall/internal/repos"
)

type AuthService struct {
	Members    *repos.MemberRepo
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewAuthService(members *repos.MemberRepo, secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{Members: members, Secret: []byte(secret), AccessTTL: accessTTL, RefreshTTL: refreshTTL}
}

type TokenPair struct {
	Email        string `json:"email,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type accessClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Join registers a member with the USER role. Duplicate emails are rejected.
func (s *AuthService) Join(email, password, nickname string) (string, error) {
	if _, err := s.Members.ByEmail(email); err == nil {
		return "", apperr.New(400, "ERROR_JOIN", "email already registered")
	} else if err != sql.ErrNoRows {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	m := &domain.Member{
		ID:       uuid.NewString(),
		Email:    email,
		Nickname: nickname,
		Social:   false,
		Hash:     string(hash),
	}
	if err := s.Members.Create(m, "USER"); err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *AuthService) Login(email, password string) (TokenPair, error) {
	m, err := s.Members.ByEmail(email)
	if err != nil {
		return TokenPair{}, apperr.Auth("ERROR_LOGIN", "invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Hash), []byte(password)) != nil {
		return TokenPair{}, apperr.Auth("ERROR_LOGIN", "invalid email or password")
	}
	pair, err := s.issue(m)
	if err != nil {
		return TokenPair{}, err
	}
	pair.Email = m.Email
	return pair, nil
}

// Refresh redeems a refresh token for a fresh pair. Tokens are single use:
// redeeming deletes the stored row, so a replay fails as unknown.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	userID, exp, err := s.Members.TakeRefreshToken(refreshToken)
	if err == sql.ErrNoRows {
		return TokenPair{}, apperr.Auth("ERROR_REFRESH", "unknown refresh token")
	}
	if err != nil {
		return TokenPair{}, err
	}
	if time.Now().After(exp) {
		return TokenPair{}, apperr.Auth("ERROR_REFRESH", "refresh token expired")
	}
	m, err := s.Members.ByID(userID)
	if err != nil {
		return TokenPair{}, apperr.Auth("ERROR_REFRESH", "member no longer exists")
	}
	return s.issue(m)
}

func (s *AuthService) issue(m *domain.Member) (TokenPair, error) {
	roles, err := s.Members.Roles(m.ID)
	if err != nil {
		return TokenPair{}, err
	}

	now := time.Now()
	claims := accessClaims{
		Email: m.Email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   m.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return TokenPair{}, err
	}

	refresh := uuid.NewString()
	if err := s.Members.SaveRefreshToken(refresh, m.ID, now.Add(s.RefreshTTL)); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Resolve validates a bearer access token and loads the member's current
// profile and roles. Role checks happen against the DB state, not the claims,
// so a revoked ADMIN loses access as soon as the role row is gone.
func (s *AuthService) Resolve(authHeader string) (*domain.AuthMember, error) {
	if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return nil, apperr.Auth("NO_AUTH_HEADER", "missing bearer credential")
	}
	raw := strings.TrimSpace(authHeader[7:])
	if raw == "" {
		return nil, apperr.Auth("EMPTY_TOKEN", "empty bearer credential")
	}

	var claims accessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, apperr.Auth("INVALID_ACCESS_TOKEN", "invalid or expired access token")
	}

	m, err := s.Members.ByID(claims.Subject)
	if err == sql.ErrNoRows {
		return nil, apperr.Auth("PROFILE_NOT_FOUND", "no profile for token subject")
	}
	if err != nil {
		return nil, err
	}
	roles, err := s.Members.Roles(m.ID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthMember{
		ID: m.ID, Email: m.Email, Nickname: m.Nickname, Social: m.Social, Roles: roles,
	}, nil
}

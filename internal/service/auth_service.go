package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory_tracker/internal/models"
	"inventory_tracker/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// sessionTTL is the fixed maximum session lifetime.
const sessionTTL = 2 * time.Hour

// dummyHash is a bcrypt hash of an unguessable value. It is compared
// against when the username is unknown so the miss path costs the same
// as a real password check.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles credential verification and session tokens.
type AuthService struct {
	users    repository.Users
	sessions repository.Sessions
	secret   []byte
}

func NewAuthService(users repository.Users, sessions repository.Sessions, secret string) *AuthService {
	return &AuthService{users: users, sessions: sessions, secret: []byte(secret)}
}

var _ Authorization = (*AuthService)(nil)

// SignIn verifies credentials and issues an opaque session token. The
// raw token is returned exactly once; only its HMAC is persisted.
// Unknown username and wrong password both fail with ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, *models.Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		_ = verifyPassword(dummyHash, password)
		return "", nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	sess := models.Session{
		UserID:    u.ID,
		Username:  u.Username,
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	if err := s.sessions.Create(ctx, s.hashToken(token), sess); err != nil {
		return "", nil, err
	}
	return token, &sess, nil
}

// Authenticate resolves a presented token to its session. Absent and
// expired tokens fail identically; expired rows are evicted on sight.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrInvalidCredentials
	}
	hash := s.hashToken(token)
	sess, err := s.sessions.GetByTokenHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrInvalidCredentials
	}
	if !sess.ExpiresAt.After(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, hash)
		return nil, ErrInvalidCredentials
	}
	return sess, nil
}

// SignOut invalidates the session. A token that matches nothing is a no-op.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, s.hashToken(token))
}

// EnsureDefaultAdmin seeds the admin account at most once, regardless
// of how many times initialization runs. An existing row is never
// overwritten. Returns true when a row was created.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	return s.users.CreateIfAbsent(ctx, username, hash)
}

// hashToken derives the storage key for a token. Sessions at rest hold
// only this HMAC, so a leaked table yields no usable tokens.
func (s *AuthService) hashToken(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

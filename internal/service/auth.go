package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_api/internal/events"
	"github.com/Skotchmaster/ecommerce_api/internal/hash"
	"github.com/Skotchmaster/ecommerce_api/internal/logging"
	"github.com/Skotchmaster/ecommerce_api/internal/models"
	"github.com/Skotchmaster/ecommerce_api/internal/repo"
)

// Authenticatable is the capability the session layer needs from an
// account entity.
type Authenticatable interface {
	AuthID() uint
}

type AuthService struct {
	Repo          *repo.GormRepo
	SessionSecret []byte
	SessionTTL    time.Duration
	Producer      *events.Producer
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) signSessionToken(a Authenticatable, exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprint(a.AuthID()),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.SessionSecret)
}

func (s *AuthService) parseSessionToken(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.SessionSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Register creates an account with a bcrypt password hash. Users are
// otherwise provisioned out of band; this is that path over HTTP.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, PasswordHash: pwHash}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// Login moves a client from Anonymous to Authenticated: the username
// must exist and the password must match its bcrypt hash. On success a
// session token is signed and its sha256 persisted so logout can revoke
// it server-side.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	exp := time.Now().Add(s.SessionTTL)
	token, err := s.signSessionToken(user, exp)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Token:     Sha256Hex(token),
		UserID:    user.AuthID(),
		ExpiresAt: exp.Unix(),
	}
	if err := s.Repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}

	event := map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	}
	if err := s.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(user.ID), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return &LoginResult{Token: token, ExpiresAt: exp}, nil
}

// Authenticate validates a presented session token and returns the
// user it is bound to. The token must carry a valid signature, be
// unexpired, and still have a live server-side session row.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (uint, error) {
	if raw == "" {
		return 0, ErrInvalidSession
	}

	claims, err := s.parseSessionToken(raw)
	if err != nil {
		return 0, err
	}

	session, err := s.Repo.GetSessionByToken(ctx, Sha256Hex(raw))
	if err != nil {
		return 0, ErrInvalidSession
	}
	if session.Revoked || time.Now().Unix() > session.ExpiresAt {
		return 0, ErrInvalidSession
	}

	var userID uint
	if _, err := fmt.Sscan(claims.Subject, &userID); err != nil {
		return 0, ErrInvalidSession
	}
	return userID, nil
}

// Logout tears the session down. It requires a currently valid
// session: revoking an unknown or already dead token fails.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if _, err := s.Authenticate(ctx, raw); err != nil {
		return err
	}
	if err := s.Repo.RevokeSession(ctx, Sha256Hex(raw)); err != nil {
		return ErrInvalidSession
	}
	return nil
}

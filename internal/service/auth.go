package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gopress-cms/gopress/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential storage, login, and session tokens.
//
// Stored credentials are bcrypt hashes. Rows imported from older
// installs may still hold plaintext; when enforceEncryption is on (the
// normal mode), a successful login against such a row re-hashes and
// persists the credential before reporting success, so legacy accounts
// self-heal without a bulk migration. Authenticate is therefore not
// read-only.
type AuthService struct {
	users             domain.UserRepository
	sessionSecret     []byte
	bcryptCost        int
	enforceEncryption bool
}

// NewAuthService creates a new AuthService. enforceEncryption should be
// true outside of tests and data-recovery tooling.
func NewAuthService(users domain.UserRepository, sessionSecret string, bcryptCost int, enforceEncryption bool) *AuthService {
	return &AuthService{
		users:             users,
		sessionSecret:     []byte(sessionSecret),
		bcryptCost:        bcryptCost,
		enforceEncryption: enforceEncryption,
	}
}

// SetPassword hashes the plaintext and persists the hash immediately.
// Plaintext is never written to storage.
func (s *AuthService) SetPassword(ctx context.Context, user *domain.User, plaintext string) error {
	if plaintext == "" {
		return fmt.Errorf("%w: password must not be blank", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("persist password: %w", err)
	}
	user.Password = string(hash)
	return nil
}

// Authenticate verifies the candidate against the user's stored
// credential. A stored value that bcrypt cannot parse is treated as
// legacy plaintext: with enforcement on, a direct match upgrades the row
// to a hash before returning true; with enforcement off, only the direct
// comparison is performed.
func (s *AuthService) Authenticate(ctx context.Context, user *domain.User, candidate string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	// The stored value is not a valid bcrypt hash: legacy plaintext row.
	if !s.enforceEncryption {
		return subtle.ConstantTimeCompare([]byte(user.Password), []byte(candidate)) == 1, nil
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(candidate)) != 1 {
		return false, nil
	}
	if err := s.SetPassword(ctx, user, candidate); err != nil {
		return false, fmt.Errorf("upgrade legacy credential: %w", err)
	}
	return true, nil
}

// Login verifies the username/password pair and returns the user plus a
// signed session token. Bad username and bad password both map to
// domain.ErrUnauthorized so callers cannot distinguish them.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	ok, err := s.Authenticate(ctx, user, password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.mintSessionToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("mint session token: %w", err)
	}
	return user, token, nil
}

// CreateUser creates a user with a hashed credential. Used by the
// create-admin CLI and the admin panel.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be blank", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be blank", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username: username,
		Password: string(hash),
		IsActive: true,
		IsAdmin:  isAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile persists profile fields edited by the user themselves.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User) error {
	return s.users.Update(ctx, user)
}

// ValidateSessionToken parses a session token and returns the session
// state it carries.
func (s *AuthService) ValidateSessionToken(token string) (domain.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil {
		return domain.Session{}, domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return domain.Session{}, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return domain.Session{}, domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return domain.Session{}, domain.ErrUnauthorized
	}

	sess := domain.Session{UserID: userID}
	sess.IsAuthenticated, _ = claims["is_authenticated"].(bool)
	sess.IsAdmin, _ = claims["is_admin"].(bool)
	return sess, nil
}

func (s *AuthService) mintSessionToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":              strconv.FormatInt(user.ID, 10),
		"is_authenticated": true,
		"is_admin":         user.IsAdmin,
		"iat":              now.Unix(),
		"exp":              now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.sessionSecret)
}

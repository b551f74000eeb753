package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/studenthustle/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrRegistrationFieldsRequired is returned when name, email or password is blank.
	ErrRegistrationFieldsRequired = errors.New("name, email and password are required")
	// ErrLoginFieldsRequired is returned when email or password is blank.
	ErrLoginFieldsRequired = errors.New("email and password are required")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrEmailTaken is returned when the email belongs to an existing account.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. Both cases share the message.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const maxPasswordBytes = 72

// AuthService handles registration, login and token checks.
type AuthService struct {
	store  UserStore
	hasher *PasswordHasher
	jwt    *JWTManager
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		jwt:    jwt,
		now:    time.Now,
	}
}

// Register creates a new account and signs the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Session, *domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, nil, ErrRegistrationFieldsRequired
	}
	if len(password) > maxPasswordBytes {
		return nil, nil, ErrPasswordTooLong
	}

	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, nil, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	// a concurrent registration can still win the unique index
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.newSession(user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Login checks credentials and returns a fresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrLoginFieldsRequired
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

// ValidateToken validates a session token and returns claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.FindByID(ctx, userID)
}

func (s *AuthService) newSession(user *domain.User) (*domain.Session, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.Session{
		Token: token,
		User:  user.Public(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

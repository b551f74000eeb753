package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/studenthustle/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	Register(ctx context.Context, name, email, password string) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.PublicUser, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates an account via the register service.
func (a *AuthAdapter) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	req := RegisterRequest{Name: name, Email: email, Password: password}
	var resp SessionResponse

	if err := callService(ctx, a.container, "register", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates via the login service.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp SessionResponse

	if err := callService(ctx, a.container, "login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken validates a session token and returns claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := callService(ctx, a.container, "validate-token", &req, &resp); err != nil {
		return nil, err
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &domain.Claims{
		UserID: resp.UserID,
		Email:  resp.Email,
		Name:   resp.Name,
	}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := callService(ctx, a.container, "get-user", &req, &resp); err != nil {
		return nil, err
	}

	return &domain.PublicUser{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	}, nil
}

func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return mapServiceError(fmt.Errorf("%s request failed: %w", service, err))
	}
	return nil
}

// knownErrors is checked in order; longer messages come before messages
// they contain.
var knownErrors = []error{
	ErrRegistrationFieldsRequired,
	ErrLoginFieldsRequired,
	ErrPasswordTooLong,
	ErrEmailTaken,
	ErrInvalidCredentials,
	ErrUserNotFound,
}

// mapServiceError restores sentinel errors from a service reply, since
// errors cross the bus as plain text.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, known := range knownErrors {
		if strings.Contains(msg, known.Error()) {
			return known
		}
	}
	return err
}


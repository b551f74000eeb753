package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/example/studenthustle/config"
	"github.com/example/studenthustle/events"
	"github.com/example/studenthustle/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthModule provides the credential store and token issuer.
type AuthModule struct {
	storeCfg config.StoreConfig
	authCfg  config.AuthConfig
	handle   *storage.Handle
	service  *AuthService
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)
var _ mono.EventEmitterModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(storeCfg config.StoreConfig, authCfg config.AuthConfig) *AuthModule {
	return &AuthModule{
		storeCfg: storeCfg,
		authCfg:  authCfg,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// SetEventBus receives the event bus used to announce registrations.
func (m *AuthModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *AuthModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.UserRegisteredV1.ToBase(),
	}
}

// Start opens the user store and builds the service.
func (m *AuthModule) Start(ctx context.Context) error {
	handle, err := storage.Acquire(ctx, m.storeCfg)
	if err != nil {
		return err
	}
	m.handle = handle

	store, err := newUserStore(ctx, handle)
	if err != nil {
		return fmt.Errorf("failed to prepare user store: %w", err)
	}

	jwtConfig := DefaultJWTConfig()
	if m.authCfg.JWTSecret != "" {
		jwtConfig.SecretKey = m.authCfg.JWTSecret
	}
	if m.authCfg.JWTIssuer != "" {
		jwtConfig.Issuer = m.authCfg.JWTIssuer
	}
	if m.authCfg.TokenTTL > 0 {
		jwtConfig.TokenDuration = m.authCfg.TokenTTL
	}

	m.service = NewAuthService(store, NewPasswordHasher(m.authCfg.BcryptCost), NewJWTManager(jwtConfig))

	log.Printf("[auth] Module started (store: %s)", handle.Location())
	return nil
}

// newUserStore picks the UserStore implementation for the open handle.
func newUserStore(ctx context.Context, handle *storage.Handle) (UserStore, error) {
	if handle.Mongo != nil {
		return NewMongoUserStore(ctx, handle.Mongo)
	}
	repo := NewUserRepository(handle.SQL)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(ctx context.Context) error {
	if m.handle != nil {
		if err := storage.Release(ctx, m.handle); err != nil {
			log.Printf("[auth] Error closing store: %v", err)
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.handle == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if err := m.handle.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("store ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"store": m.handle.Location(),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"register",
		json.Unmarshal,
		json.Marshal,
		m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"login",
		json.Unmarshal,
		json.Marshal,
		m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"validate-token",
		json.Unmarshal,
		json.Marshal,
		m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-user",
		json.Unmarshal,
		json.Marshal,
		m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	log.Printf("[auth] Registered services: register, login, validate-token, get-user")
	return nil
}

// handleRegister handles user registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (SessionResponse, error) {
	session, user, err := m.service.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return SessionResponse{}, err
	}

	if m.eventBus != nil {
		event := events.UserRegisteredEvent{
			UserID:       user.ID,
			Name:         user.Name,
			RegisteredAt: user.CreatedAt,
		}
		if err := events.UserRegisteredV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[auth] Warning: failed to publish UserRegistered event for %s: %v", user.ID, err)
		}
	}

	return *session, nil
}

// handleLogin handles user login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (SessionResponse, error) {
	session, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return SessionResponse{}, err
	}
	return *session, nil
}

// handleValidateToken handles token validation.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil // Return response, not error, for validation failures
	}

	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// handleGetUser handles get user requests.
func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}

	return GetUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"loomledger/internal/core/apperror"
	appctx "loomledger/internal/core/context"
	"loomledger/internal/core/id"
	"loomledger/internal/core/tx"
	"loomledger/internal/domain/catalogs/supervisor"
	"loomledger/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts   int
	LockDuration       time.Duration
	PasswordMinLength  int
	RefreshTokenExpiry time.Duration
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:   5,
		LockDuration:       15 * time.Minute,
		PasswordMinLength:  8,
		RefreshTokenExpiry: 7 * 24 * time.Hour, // 7 days
	}
}

// SupervisorDirectory resolves supervisors for catalog-backed login.
// Satisfied by the supervisor catalog service.
type SupervisorDirectory interface {
	FindByID(ctx context.Context, supervisorID string) (*supervisor.Supervisor, error)
	GetByID(ctx context.Context, entityID id.ID) (*supervisor.Supervisor, error)
}

// Service provides authentication and authorization logic.
type Service struct {
	userRepo    UserRepository
	roleRepo    RoleRepository
	permRepo    PermissionRepository
	tokenRepo   TokenRepository
	supervisors SupervisorDirectory
	txManager   tx.Manager
	jwtService  *JWTService
	config      ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	roleRepo RoleRepository,
	permRepo PermissionRepository,
	tokenRepo TokenRepository,
	supervisors SupervisorDirectory,
	txManager tx.Manager,
	jwtService *JWTService,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		permRepo:    permRepo,
		tokenRepo:   tokenRepo,
		supervisors: supervisors,
		txManager:   txManager,
		jwtService:  jwtService,
		config:      config,
	}
}

// CreateUser creates an administrative user with a hashed password.
// Used by seeding; there is no self-registration.
func (s *Service) CreateUser(ctx context.Context, email, password string, isAdmin bool) (*User, error) {
	if email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.userRepo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("email already registered").WithDetail("email", email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(email, string(passwordHash))
	user.IsAdmin = isAdmin

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user created",
		"user_id", user.ID,
		"email", user.Email,
		"is_admin", user.IsAdmin)

	return user, nil
}

// Login authenticates an admin user by email and returns tokens.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *User, error) {
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		_ = s.userRepo.Update(ctx, user)
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	roles, err := s.userRepo.LoadRoles(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load roles: %w", err)
	}
	user.Roles = roles

	permissions, err := s.userRepo.LoadPermissions(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load permissions: %w", err)
	}
	user.Permissions = permissions

	tokens, err := s.generateUserTokens(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	user.RecordSuccessfulLogin()
	_ = s.userRepo.Update(ctx, user)

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email)

	return tokens, user, nil
}

// LoginSupervisor authenticates a supervisor by supervisor ID against
// the catalog. Inactive or soft-deleted supervisors are rejected.
func (s *Service) LoginSupervisor(ctx context.Context, creds SupervisorCredentials) (*TokenPair, *supervisor.Supervisor, error) {
	sup, err := s.supervisors.FindByID(ctx, creds.SupervisorID)
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if !sup.IsActive() {
		return nil, nil, apperror.NewForbidden("account is disabled")
	}

	if !sup.CheckPassword(creds.Password) {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	tokens, err := s.generateSupervisorTokens(ctx, sup)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	logger.Info(ctx, "supervisor logged in",
		"supervisor_id", sup.Code,
		"name", sup.Name)

	return tokens, sup, nil
}

// RefreshToken refreshes access token using refresh token. The token
// may belong to a user or to a supervisor.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	tokenHash := hashToken(refreshToken)

	token, err := s.tokenRepo.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid refresh token")
	}

	if !token.IsValid() {
		return nil, apperror.NewUnauthorized("refresh token expired or revoked")
	}

	_ = s.tokenRepo.RevokeRefreshToken(ctx, token.ID, "refreshed")

	if user, err := s.userRepo.GetByID(ctx, token.UserID); err == nil {
		if err := user.CanLogin(); err != nil {
			return nil, err
		}
		user.Roles, _ = s.userRepo.LoadRoles(ctx, user.ID)
		user.Permissions, _ = s.userRepo.LoadPermissions(ctx, user.ID)
		return s.generateUserTokens(ctx, user)
	}

	sup, err := s.supervisors.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("user not found")
	}
	if !sup.IsActive() {
		return nil, apperror.NewForbidden("account is disabled")
	}

	return s.generateSupervisorTokens(ctx, sup)
}

// Logout revokes all of the principal's refresh tokens.
func (s *Service) Logout(ctx context.Context, userID id.ID) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID, "logout")
}

// AssignRole assigns a role to a user.
func (s *Service) AssignRole(ctx context.Context, userID id.ID, roleCode string) error {
	currentUser := appctx.GetUser(ctx)
	var grantedBy id.ID
	if currentUser != nil {
		grantedBy, _ = id.Parse(currentUser.UserID)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return apperror.NewNotFound("user", userID.String())
	}

	role, err := s.roleRepo.GetByCode(ctx, roleCode)
	if err != nil {
		return apperror.NewNotFound("role", roleCode)
	}

	if err := s.userRepo.AssignRole(ctx, userID, role.ID, grantedBy); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}

	logger.Info(ctx, "role assigned",
		"user_id", userID,
		"role", roleCode,
		"granted_by", grantedBy)

	return nil
}

// RevokeRole revokes a role from a user.
func (s *Service) RevokeRole(ctx context.Context, userID id.ID, roleCode string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return apperror.NewNotFound("user", userID.String())
	}

	role, err := s.roleRepo.GetByCode(ctx, roleCode)
	if err != nil {
		return apperror.NewNotFound("role", roleCode)
	}

	return s.userRepo.RevokeRole(ctx, userID, role.ID)
}

// GetUserByID retrieves user with roles and permissions.
func (s *Service) GetUserByID(ctx context.Context, userID id.ID) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewNotFound("user", userID.String())
	}

	user.Roles, _ = s.userRepo.LoadRoles(ctx, user.ID)
	user.Permissions, _ = s.userRepo.LoadPermissions(ctx, user.ID)

	return user, nil
}

// ListUsers lists users with filtering.
func (s *Service) ListUsers(ctx context.Context, filter UserFilter) ([]User, int, error) {
	return s.userRepo.List(ctx, filter)
}

// ListRoles lists all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions lists all permissions.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.permRepo.List(ctx)
}

// CreateRole creates a new role.
func (s *Service) CreateRole(ctx context.Context, code, name, description string) (*Role, error) {
	role := NewRole(code, name)
	role.Description = description

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	return role, nil
}

// generateUserTokens creates access and refresh tokens for a user.
func (s *Service) generateUserTokens(ctx context.Context, user *User) (*TokenPair, error) {
	roleCodes := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roleCodes[i] = r.Code
	}

	return s.issueTokens(ctx, user.ID, user.Email, roleCodes, user.Permissions, user.IsAdmin)
}

// generateSupervisorTokens creates tokens for a catalog-backed
// supervisor, carrying the supervisor role's permission set.
func (s *Service) generateSupervisorTokens(ctx context.Context, sup *supervisor.Supervisor) (*TokenPair, error) {
	permissions := SupervisorPermissions()
	if role, err := s.roleRepo.GetByCode(ctx, RoleSupervisor); err == nil {
		if loaded, err := s.roleRepo.LoadPermissions(ctx, role.ID); err == nil && len(loaded) > 0 {
			permissions = make([]string, len(loaded))
			for i, p := range loaded {
				permissions[i] = p.Code
			}
		}
	}

	return s.issueTokens(ctx, sup.ID, sup.Code, []string{RoleSupervisor}, permissions, false)
}

// issueTokens signs an access token and persists a refresh token.
func (s *Service) issueTokens(ctx context.Context, principalID id.ID, email string, roles, permissions []string, isAdmin bool) (*TokenPair, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(principalID.String(), email, roles, permissions, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshTokenRaw, err := generateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	refreshToken := &RefreshToken{
		ID:        id.New(),
		UserID:    principalID,
		TokenHash: hashToken(refreshTokenRaw),
		ExpiresAt: time.Now().Add(s.config.RefreshTokenExpiry),
		CreatedAt: time.Now(),
	}

	if err := s.tokenRepo.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenRaw,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

// hashToken creates SHA256 hash of token.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// generateRandomToken generates a random token string.
func generateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

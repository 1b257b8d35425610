package usecase

import (
	"context"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/database"
	"fleet-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	Profile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	now    func() time.Time
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		now:    time.Now,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Username or email
	user, err := s.repo.User.FindByLogin(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("identifier", req.Username))
		return nil, apperr.Internal(err, "failed to find user")
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("identifier", req.Username))
		return nil, apperr.Unauthorized("invalid credentials")
	}

	// 3. Password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperr.Unauthorized("invalid credentials")
	}

	// 4. Active account
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperr.Forbidden("account is deactivated")
	}

	// 5. Session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(err, "failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return apperr.BadRequest("invalid token format")
	}

	userID, err := s.repo.Session.Revoke(ctx, tokenID, s.now())
	if err != nil {
		if isRowMissing(err) {
			return apperr.Unauthorized("session not found")
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return apperr.Internal(err, "failed to logout")
	}

	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}

// Authenticate resolves a bearer token to an active user.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, apperr.Unauthorized("invalid token format")
	}

	session, err := s.repo.Session.FindByToken(ctx, tokenID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to validate session")
	}
	if session == nil || !session.Valid(s.now()) {
		return nil, apperr.Unauthorized("invalid or expired session")
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load user")
	}
	if user == nil || !user.IsActive {
		return nil, apperr.Unauthorized("invalid or expired session")
	}
	return user, nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Internal(err, "failed to get profile")
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	email := utils.NormalizeEmail(req.Email)
	for _, login := range []string{req.Username, email} {
		existing, err := s.repo.User.FindByLogin(ctx, login)
		if err != nil {
			return nil, apperr.Internal(err, "failed to check existing users")
		}
		if existing != nil {
			return nil, apperr.Conflict("username or email already in use")
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err, "failed to hash password")
	}

	role := entity.RoleStaff
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	now := s.now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     req.Username,
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// a concurrent signup can still win the unique index
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("username or email already in use")
		}
		return nil, apperr.Internal(err, "failed to create user")
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	hours := s.config.Session.ExpiryHours
	if hours <= 0 {
		hours = 24
	}

	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

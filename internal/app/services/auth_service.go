package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	pkgauth "github.com/yigit/eduadmin/internal/pkg/auth"
)

// TokenIssuer creates and checks JWT pairs; *pkgauth.JWTService implements it
type TokenIssuer interface {
	GenerateTokenPair(userID int64, login string, role models.Role) (*pkgauth.TokenPair, error)
	ValidateRefreshToken(tokenString string) (*pkgauth.Claims, error)
}

// AuthService handles login, token rotation and the caller's profile
type AuthService interface {
	// Login checks credentials against the table of kind (admin covers super admins)
	Login(ctx context.Context, kind models.Role, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, p *auth.Principal) (interface{}, error)
}

type authServiceImpl struct {
	adminRepo   AdminRepository
	teacherRepo TeacherRepository
	studentRepo StudentRepository
	tokenRepo   TokenRepository
	jwtService  TokenIssuer
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	adminRepo AdminRepository,
	teacherRepo TeacherRepository,
	studentRepo StudentRepository,
	tokenRepo TokenRepository,
	jwtService TokenIssuer,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		adminRepo:   adminRepo,
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

func (s *authServiceImpl) credentialsRepo(role models.Role) (CredentialsRepository, error) {
	switch {
	case role.IsAdmin():
		return s.adminRepo, nil
	case role == models.RoleTeacher:
		return s.teacherRepo, nil
	case role == models.RoleStudent:
		return s.studentRepo, nil
	}
	return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
}

func (s *authServiceImpl) Login(ctx context.Context, kind models.Role, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	repo, err := s.credentialsRepo(kind)
	if err != nil {
		return nil, err
	}

	login := strings.TrimSpace(req.Login)
	if login == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	creds, err := repo.GetCredentialsByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Info().Str("login", login).Str("kind", string(kind)).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving credentials: %w", err)
	}

	if !pkgauth.CheckPassword(creds.PasswordHash, req.Password) {
		s.logger.Info().Int64("userId", creds.ID).Str("kind", string(kind)).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, creds)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", creds.ID).Str("role", string(creds.Role)).Msg("User logged in")
	return resp, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// new pair is issued for the current state of the user.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	hash := pkgauth.HashToken(refreshToken)
	stored, err := s.tokenRepo.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenRevoked) {
			s.logger.Warn().Int64("userId", claims.UserID).Msg("Revoked refresh token presented")
		}
		return nil, err
	}
	if stored.UserID != claims.UserID || stored.Role != claims.Role {
		return nil, apperrors.ErrTokenInvalid
	}

	if err := s.tokenRepo.Revoke(ctx, hash); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			// lost a race with a concurrent rotation or logout
			return nil, apperrors.ErrTokenRevoked
		}
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	repo, err := s.credentialsRepo(stored.Role)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	creds, err := repo.GetCredentialsByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("error retrieving credentials: %w", err)
	}

	return s.issueTokens(ctx, creds)
}

func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	if err := s.tokenRepo.Revoke(ctx, pkgauth.HashToken(refreshToken)); err != nil {
		return err
	}
	s.logger.Debug().Msg("Refresh token revoked on logout")
	return nil
}

// Me returns the allow-listed profile of the caller
func (s *authServiceImpl) Me(ctx context.Context, p *auth.Principal) (interface{}, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	switch {
	case p.Role.IsAdmin():
		admin, err := s.adminRepo.GetByID(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		return dto.NewAdminResponse(admin), nil
	case p.Role == models.RoleTeacher:
		teacher, err := s.teacherRepo.GetByID(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		return dto.NewTeacherResponse(teacher), nil
	case p.Role == models.RoleStudent:
		student, err := s.studentRepo.GetByID(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		return dto.NewStudentResponse(student), nil
	}
	return nil, apperrors.ErrUnauthorized
}

func (s *authServiceImpl) issueTokens(ctx context.Context, creds *models.Credentials) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(creds.ID, creds.Login, creds.Role)
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", creds.ID).Msg("Failed to generate tokens")
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	token := &models.RefreshToken{
		TokenHash:  pkgauth.HashToken(pair.RefreshToken),
		UserID:     creds.ID,
		Role:       creds.Role,
		ExpiryDate: pair.RefreshExpiresAt,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		s.logger.Error().Err(err).Int64("userId", creds.ID).Msg("Failed to store refresh token")
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        pair.ExpiresIn,
		RefreshExpiresIn: pair.RefreshExpiresIn,
		UserID:           creds.ID,
		Role:             creds.Role,
	}, nil
}

package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/auth"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
)

// loginChecker is implemented by every user repository
type loginChecker interface {
	LoginExists(ctx context.Context, login string, excludeID int64) (bool, error)
}

// userSupport holds what the admin, teacher and student services share:
// password hashing, login uniqueness, image replacement and delete cleanup.
type userSupport struct {
	imageService ImageService
	tokenRepo    TokenRepository
	publisher    messaging.Publisher
	logger       zerolog.Logger
}

func newUserSupport(imageService ImageService, tokenRepo TokenRepository, publisher messaging.Publisher, logger zerolog.Logger) userSupport {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return userSupport{
		imageService: imageService,
		tokenRepo:    tokenRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

func normalizeLogin(login string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return "", fmt.Errorf("%w: login cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.ContainsAny(login, " \t\n") {
		return "", fmt.Errorf("%w: login cannot contain whitespace", apperrors.ErrValidationFailed)
	}
	return login, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidationFailed)
	}
	return name, nil
}

// ensureLoginFree fails with ErrLoginTaken when another row of the same table uses login
func (u *userSupport) ensureLoginFree(ctx context.Context, repo loginChecker, login string, excludeID int64) error {
	exists, err := repo.LoginExists(ctx, login, excludeID)
	if err != nil {
		return fmt.Errorf("error checking login: %w", err)
	}
	if exists {
		return apperrors.ErrLoginTaken
	}
	return nil
}

func (u *userSupport) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		u.logger.Error().Err(err).Msg("Failed to hash password")
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// uploadImage stores file when one was sent; a nil file yields a nil image
func (u *userSupport) uploadImage(ctx context.Context, file *multipart.FileHeader) (*models.Image, error) {
	if file == nil {
		return nil, nil
	}
	return u.imageService.Upload(ctx, file)
}

// rollbackImage removes an image uploaded for a write that then failed
func (u *userSupport) rollbackImage(ctx context.Context, image *models.Image) {
	if image != nil {
		u.imageService.Discard(ctx, image)
	}
}

// replacedImage removes the previous image once the new one is persisted
func (u *userSupport) replacedImage(ctx context.Context, previous, current *models.Image) {
	if previous != nil && current != nil && previous.ID != current.ID {
		u.imageService.Discard(ctx, previous)
	}
}

// afterDelete runs the cleanup that follows removing a user row: the image
// file goes, refresh tokens are revoked and a users.deleted event is published.
func (u *userSupport) afterDelete(ctx context.Context, id int64, removed *models.Image, roles ...models.Role) {
	u.imageService.RemoveFile(removed)

	if revoked, err := u.tokenRepo.RevokeAllForUser(ctx, id, roles...); err != nil {
		u.logger.Error().Err(err).Int64("userId", id).Msg("Failed to revoke tokens of deleted user")
	} else if revoked > 0 {
		u.logger.Info().Int64("userId", id).Int64("revoked", revoked).Msg("Revoked tokens of deleted user")
	}

	event := messaging.UserDeletedEvent{
		UserID:    id,
		Role:      string(roles[0]),
		DeletedAt: time.Now().UTC(),
	}
	if err := u.publisher.Publish(ctx, messaging.SubjectUserDeleted, event); err != nil {
		u.logger.Warn().Err(err).Int64("userId", id).Msg("Failed to publish user deleted event")
	}
}

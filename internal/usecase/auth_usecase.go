package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/notify"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
)

// resetTokenTTL is the fixed lifetime of a password-reset token.
const resetTokenTTL = time.Hour

type authUsecase struct {
	userRepo  domain.UserRepository
	notifier  notify.Notifier
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, notifier notify.Notifier, jwtSecret string, jwtExpiry time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

func (u *authUsecase) Register(ctx context.Context, username, email, password string, role domain.Role) error {
	if role != domain.RoleJobSeeker && role != domain.RoleRecruiter {
		return apperror.BadRequest("Role must be jobSeeker or recruiter")
	}
	if err := auth.ValidatePassword(password); err != nil {
		return apperror.BadRequest(err.Error())
	}

	exists, err := u.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return apperror.Internal(err)
	}
	if exists {
		return apperror.Conflict("User already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperror.Internal(err)
	}
	token, err := auth.GenerateOneTimeToken()
	if err != nil {
		return apperror.Internal(err)
	}

	user := &domain.User{
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		VerificationToken: token,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// The unique index can still fire under a signup race.
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("User already exists")
		}
		return apperror.Internal(err)
	}

	u.notifier.VerificationEmail(email, token)
	return nil
}

func (u *authUsecase) VerifyEmail(ctx context.Context, token string) error {
	user, err := u.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Single use: a consumed token is indistinguishable from an
			// unknown one.
			return apperror.NotFound("User not found or already verified")
		}
		return apperror.Internal(err)
	}
	if err := u.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	user, err := u.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, apperror.Unauthorized("Invalid email or password")
		}
		return "", nil, apperror.Internal(err)
	}
	if !user.IsEmailVerified {
		return "", nil, apperror.Unauthorized("Email not verified. Please check your email for verification instructions.")
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}

	token, err := auth.GenerateToken(u.jwtSecret, user.ID.Hex(), u.jwtExpiry)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return token, user, nil
}

func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}

	token, err := auth.GenerateOneTimeToken()
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return apperror.Internal(err)
	}

	u.notifier.PasswordResetEmail(user.Email, token)
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := u.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Unauthorized("Invalid or expired reset token")
		}
		return apperror.Internal(err)
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return apperror.Unauthorized("Invalid or expired reset token")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperror.BadRequest(err.Error())
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	// Replaces the hash and clears the token in the same update.
	if err := u.userRepo.ReplacePassword(ctx, user.ID, hash); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	oid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.Unauthorized("Invalid token")
	}
	user, err := u.userRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

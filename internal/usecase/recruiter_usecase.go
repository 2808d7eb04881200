package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type recruiterUsecase struct {
	userRepo          domain.UserRepository
	recruiterDataRepo domain.RecruiterDataRepository
}

func NewRecruiterUsecase(userRepo domain.UserRepository, recruiterDataRepo domain.RecruiterDataRepository) domain.RecruiterUsecase {
	return &recruiterUsecase{
		userRepo:          userRepo,
		recruiterDataRepo: recruiterDataRepo,
	}
}

func (u *recruiterUsecase) PostRecruiterData(ctx context.Context, userID string, data *domain.RecruiterData) error {
	user, err := u.requireRecruiter(ctx, userID)
	if err != nil {
		return err
	}
	if data.CompanyName == "" {
		return apperror.BadRequest("Company name is required")
	}

	data.UserID = user.ID
	if err := u.recruiterDataRepo.Create(ctx, data); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return apperror.Conflict("Recruiter data already exists for this user.")
		case errors.Is(err, domain.ErrNotFound):
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *recruiterUsecase) GetRecruiterData(ctx context.Context, userID string) (*domain.RecruiterData, error) {
	user, err := u.requireRecruiter(ctx, userID)
	if err != nil {
		return nil, err
	}
	data, err := u.recruiterDataRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Recruiter data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return data, nil
}

func (u *recruiterUsecase) UpdateRecruiterData(ctx context.Context, userID string, patch *domain.RecruiterDataPatch) (*domain.RecruiterData, error) {
	data, err := u.GetRecruiterData(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.CompanyName != nil {
		if *patch.CompanyName == "" {
			return nil, apperror.BadRequest("Company name cannot be empty")
		}
		data.CompanyName = *patch.CompanyName
	}
	if patch.CompanySize != nil {
		data.CompanySize = *patch.CompanySize
	}
	if patch.CompanyAddress != nil {
		data.CompanyAddress = *patch.CompanyAddress
	}
	if patch.Industry != nil {
		data.Industry = *patch.Industry
	}

	if err := u.recruiterDataRepo.Update(ctx, data); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Recruiter data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return data, nil
}

func (u *recruiterUsecase) SearchJobSeekers(ctx context.Context, userID, text string) ([]domain.PublicProfile, error) {
	if _, err := u.requireRecruiter(ctx, userID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apperror.BadRequest("Search text is required")
	}
	profiles, err := u.userRepo.SearchJobSeekers(ctx, text)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return profiles, nil
}

func (u *recruiterUsecase) requireRecruiter(ctx context.Context, userID string) (*domain.User, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	user, err := u.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	if user.Role != domain.RoleRecruiter {
		return nil, apperror.Forbidden("User is not a recruiter")
	}
	return user, nil
}

package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/notify"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

type jobUsecase struct {
	jobRepo       domain.JobRepository
	userRepo      domain.UserRepository
	notifier      notify.Notifier
	listDelimiter string
}

func NewJobUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository, notifier notify.Notifier, listDelimiter string) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		listDelimiter: listDelimiter,
	}
}

func (u *jobUsecase) PostJob(ctx context.Context, userID string, job *domain.Job, requirementsText, skillsText string) (*domain.Job, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, apperror.Forbidden("User is not a recruiter")
	}
	if job.Title == "" || job.Description == "" || job.Company == "" || job.Location == "" {
		return nil, apperror.BadRequest("Title, description, company and location are required")
	}

	job.Requirements = splitList(requirementsText, u.listDelimiter)
	job.Skills = splitList(skillsText, u.listDelimiter)
	job.PostedBy = user.ID
	job.Applicants = nil

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	u.notifyPreferenceMatches(ctx, job.Title, job, false)
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	jid, ok := parseObjectID(jobID)
	if !ok {
		return nil, apperror.NotFound("Job not found")
	}
	job, err := u.jobRepo.GetByID(ctx, jid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, userID string) ([]domain.JobWithApplied, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	jobs, err := u.jobRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	annotated := make([]domain.JobWithApplied, 0, len(jobs))
	for _, job := range jobs {
		annotated = append(annotated, domain.JobWithApplied{
			Job:     job,
			Applied: job.HasApplicant(user.ID),
		})
	}
	return annotated, nil
}

func (u *jobUsecase) ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]domain.Job, error) {
	rid, ok := parseObjectID(recruiterID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	jobs, err := u.jobRepo.FetchByPoster(ctx, rid)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) EditJob(ctx context.Context, userID, jobID string, patch *domain.JobPatch) (*domain.Job, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	job, err := u.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != uid {
		return nil, apperror.Forbidden("You are not authorized to edit this job")
	}

	originalTitle := job.Title
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apperror.BadRequest("Title cannot be empty")
		}
		job.Title = *patch.Title
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return nil, apperror.BadRequest("Description cannot be empty")
		}
		job.Description = *patch.Description
	}
	if patch.Company != nil {
		if *patch.Company == "" {
			return nil, apperror.BadRequest("Company cannot be empty")
		}
		job.Company = *patch.Company
	}
	if patch.Location != nil {
		if *patch.Location == "" {
			return nil, apperror.BadRequest("Location cannot be empty")
		}
		job.Location = *patch.Location
	}
	if patch.Requirements != nil {
		job.Requirements = splitList(*patch.Requirements, u.listDelimiter)
	}
	if patch.Skills != nil {
		job.Skills = splitList(*patch.Skills, u.listDelimiter)
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	// Subscribers of the original title are told about the change; the new
	// title's subscribers did not opt in to this job.
	if job.Title != originalTitle {
		u.notifyPreferenceMatches(ctx, originalTitle, job, true)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, userID, jobID string) error {
	uid, ok := parseObjectID(userID)
	if !ok {
		return apperror.NotFound("User not found")
	}
	job, err := u.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.PostedBy != uid {
		return apperror.Forbidden("You are not authorized to delete this job")
	}

	if err := u.jobRepo.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) ApplyForJob(ctx context.Context, userID, jobID string) error {
	applicant, err := u.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if applicant.Role != domain.RoleJobSeeker {
		return apperror.Forbidden("User is not a job seeker")
	}
	job, err := u.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	if err := u.jobRepo.AddApplicant(ctx, job.ID, applicant.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return apperror.Conflict("User has already applied for this job")
		case errors.Is(err, domain.ErrNotFound):
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}

	poster, err := u.userRepo.GetByID(ctx, job.PostedBy)
	if err != nil {
		logger.Log.Error("Failed to resolve job poster for notification", "job", job.ID.Hex(), "error", err)
		return nil
	}
	u.notifier.ApplicationReceived(poster.Email, applicant.Username, job)
	return nil
}

func (u *jobUsecase) ListApplicants(ctx context.Context, userID, jobID string) ([]domain.PublicProfile, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	job, err := u.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != uid {
		return nil, apperror.Forbidden("You are not authorized to view applicants for this job")
	}

	applicants, err := u.userRepo.FindByAppliedJob(ctx, job.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return applicants, nil
}

func (u *jobUsecase) SearchJobs(ctx context.Context, text string) ([]domain.Job, error) {
	if text == "" {
		return nil, apperror.BadRequest("Search text is required")
	}
	jobs, err := u.jobRepo.Search(ctx, text)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

// notifyPreferenceMatches fans a notification out to every user whose
// preference list contains the title. The triggering mutation has already
// committed; lookup failures are logged and dropped.
func (u *jobUsecase) notifyPreferenceMatches(ctx context.Context, title string, job *domain.Job, updated bool) {
	matches, err := u.userRepo.FindByJobPreference(ctx, title)
	if err != nil {
		logger.Log.Error("Failed to find preference matches", "title", title, "error", err)
		return
	}
	for _, match := range matches {
		if updated {
			u.notifier.JobTitleUpdated(match.Email, job)
		} else {
			u.notifier.JobMatch(match.Email, job)
		}
	}
}

func (u *jobUsecase) getUser(ctx context.Context, userID string) (*domain.User, error) {
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
	return user, nil
}

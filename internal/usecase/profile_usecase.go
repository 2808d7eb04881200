package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type profileUsecase struct {
	userRepo         domain.UserRepository
	personalDataRepo domain.PersonalDataRepository
	skillsRepo       domain.SkillsRepository
	educationRepo    domain.EducationRepository
	employmentRepo   domain.EmploymentRepository
	skillsDelimiter  string
	listDelimiter    string
}

func NewProfileUsecase(
	userRepo domain.UserRepository,
	personalDataRepo domain.PersonalDataRepository,
	skillsRepo domain.SkillsRepository,
	educationRepo domain.EducationRepository,
	employmentRepo domain.EmploymentRepository,
	skillsDelimiter, listDelimiter string,
) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo:         userRepo,
		personalDataRepo: personalDataRepo,
		skillsRepo:       skillsRepo,
		educationRepo:    educationRepo,
		employmentRepo:   employmentRepo,
		skillsDelimiter:  skillsDelimiter,
		listDelimiter:    listDelimiter,
	}
}

func (u *profileUsecase) AddPersonalData(ctx context.Context, userID string, data *domain.PersonalData) error {
	uid, ok := parseObjectID(userID)
	if !ok {
		return apperror.NotFound("User not found")
	}
	if data.FullName == "" {
		return apperror.BadRequest("Full name is required")
	}
	if data.DateOfBirth != nil && data.DateOfBirth.After(time.Now()) {
		return apperror.BadRequest("Invalid date of birth")
	}

	// Ownership comes from the authenticated identity, never the body.
	data.UserID = uid
	if err := u.personalDataRepo.Create(ctx, data); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return apperror.Conflict("Personal data already exists for this user.")
		case errors.Is(err, domain.ErrNotFound):
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) GetPersonalData(ctx context.Context, userID string) (*domain.PersonalData, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	data, err := u.personalDataRepo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Personal data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return data, nil
}

func (u *profileUsecase) EditPersonalData(ctx context.Context, userID string, patch *domain.PersonalDataPatch) (*domain.PersonalData, error) {
	data, err := u.GetPersonalData(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		if *patch.FullName == "" {
			return nil, apperror.BadRequest("Full name cannot be empty")
		}
		data.FullName = *patch.FullName
	}
	if patch.DateOfBirth != nil {
		if patch.DateOfBirth.After(time.Now()) {
			return nil, apperror.BadRequest("Invalid date of birth")
		}
		data.DateOfBirth = patch.DateOfBirth
	}
	if patch.Address != nil {
		data.Address = *patch.Address
	}

	if err := u.personalDataRepo.Update(ctx, data); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Personal data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return data, nil
}

func (u *profileUsecase) PostSkills(ctx context.Context, userID, skillsText string) (*domain.SkillSet, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	skills := splitList(skillsText, u.skillsDelimiter)
	if len(skills) == 0 {
		return nil, apperror.BadRequest("Skills are required")
	}

	set := &domain.SkillSet{UserID: uid, Skills: skills}
	if err := u.skillsRepo.Create(ctx, set); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.Conflict("Skills already exist for this user.")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return set, nil
}

func (u *profileUsecase) GetSkills(ctx context.Context, userID string) (*domain.SkillSet, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	set, err := u.skillsRepo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Skills not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return set, nil
}

func (u *profileUsecase) EditSkills(ctx context.Context, userID, skillsText string) (*domain.SkillSet, error) {
	set, err := u.GetSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	skills := splitList(skillsText, u.skillsDelimiter)
	if len(skills) == 0 {
		return nil, apperror.BadRequest("Skills are required")
	}

	set.Skills = skills
	if err := u.skillsRepo.Update(ctx, set); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Skills not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return set, nil
}

func (u *profileUsecase) AddEducation(ctx context.Context, userID string, edu *domain.Education) error {
	uid, ok := parseObjectID(userID)
	if !ok {
		return apperror.NotFound("User not found")
	}
	if edu.School == "" || edu.Degree == "" {
		return apperror.BadRequest("School and degree are required")
	}
	if edu.GraduationDate.After(time.Now()) {
		return apperror.BadRequest("Invalid graduation date")
	}

	edu.UserID = uid
	if err := u.educationRepo.Create(ctx, edu); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) GetEducations(ctx context.Context, userID string) ([]domain.Education, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	entries, err := u.educationRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

func (u *profileUsecase) GetEducation(ctx context.Context, userID, educationID string) (*domain.Education, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	eid, ok := parseObjectID(educationID)
	if !ok {
		return nil, apperror.NotFound("Education data not found for this user.")
	}
	// Lookup by (id, userId): another user's entry reads as absent.
	edu, err := u.educationRepo.GetByID(ctx, eid, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Education data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return edu, nil
}

func (u *profileUsecase) EditEducation(ctx context.Context, userID, educationID string, patch *domain.EducationPatch) (*domain.Education, error) {
	edu, err := u.GetEducation(ctx, userID, educationID)
	if err != nil {
		return nil, err
	}

	if patch.School != nil {
		if *patch.School == "" {
			return nil, apperror.BadRequest("School cannot be empty")
		}
		edu.School = *patch.School
	}
	if patch.Degree != nil {
		if *patch.Degree == "" {
			return nil, apperror.BadRequest("Degree cannot be empty")
		}
		edu.Degree = *patch.Degree
	}
	if patch.FieldOfStudy != nil {
		edu.FieldOfStudy = *patch.FieldOfStudy
	}
	if patch.GraduationDate != nil {
		if patch.GraduationDate.After(time.Now()) {
			return nil, apperror.BadRequest("Invalid graduation date")
		}
		edu.GraduationDate = *patch.GraduationDate
	}

	if err := u.educationRepo.Update(ctx, edu); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Education data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return edu, nil
}

func (u *profileUsecase) DeleteEducation(ctx context.Context, userID, educationID string) error {
	uid, ok := parseObjectID(userID)
	if !ok {
		return apperror.NotFound("User not found")
	}
	eid, ok := parseObjectID(educationID)
	if !ok {
		return apperror.NotFound("Education entry not found")
	}
	if err := u.educationRepo.Delete(ctx, eid, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Education entry not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) AddEmployment(ctx context.Context, userID string, emp *domain.Employment) error {
	uid, ok := parseObjectID(userID)
	if !ok {
		return apperror.NotFound("User not found")
	}
	if emp.Company == "" || emp.Position == "" {
		return apperror.BadRequest("Company and position are required")
	}
	if emp.EndDate != nil && emp.StartDate.After(*emp.EndDate) {
		return apperror.BadRequest("Invalid start date")
	}

	emp.UserID = uid
	if err := u.employmentRepo.Create(ctx, emp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) GetEmployments(ctx context.Context, userID string) ([]domain.Employment, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	entries, err := u.employmentRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

func (u *profileUsecase) GetEmployment(ctx context.Context, userID, employmentID string) (*domain.Employment, error) {
	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	eid, ok := parseObjectID(employmentID)
	if !ok {
		return nil, apperror.NotFound("Employment data not found for this user.")
	}
	emp, err := u.employmentRepo.GetByID(ctx, eid, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Employment data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return emp, nil
}

func (u *profileUsecase) EditEmployment(ctx context.Context, userID, employmentID string, patch *domain.EmploymentPatch) (*domain.Employment, error) {
	emp, err := u.GetEmployment(ctx, userID, employmentID)
	if err != nil {
		return nil, err
	}

	if patch.Company != nil {
		if *patch.Company == "" {
			return nil, apperror.BadRequest("Company cannot be empty")
		}
		emp.Company = *patch.Company
	}
	if patch.Position != nil {
		if *patch.Position == "" {
			return nil, apperror.BadRequest("Position cannot be empty")
		}
		emp.Position = *patch.Position
	}
	if patch.StartDate != nil {
		emp.StartDate = *patch.StartDate
	}
	if patch.ClearEndDate {
		emp.EndDate = nil
	} else if patch.EndDate != nil {
		emp.EndDate = patch.EndDate
	}
	if emp.EndDate != nil && emp.StartDate.After(*emp.EndDate) {
		return nil, apperror.BadRequest("Invalid start date")
	}

	if err := u.employmentRepo.Update(ctx, emp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Employment data not found for this user.")
		}
		return nil, apperror.Internal(err)
	}
	return emp, nil
}

func (u *profileUsecase) DeleteEmployment(ctx context.Context, userID, employmentID string) error {
	uid, ok := parseObjectID(userID)
	if !ok {
		return apperror.NotFound("User not found")
	}
	eid, ok := parseObjectID(employmentID)
	if !ok {
		return apperror.NotFound("Employment entry not found")
	}
	if err := u.employmentRepo.Delete(ctx, eid, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Employment entry not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) SetJobPreferences(ctx context.Context, userID, titlesText string) ([]string, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleJobSeeker {
		return nil, apperror.Forbidden("User is not a job seeker")
	}

	titles := splitList(titlesText, u.listDelimiter)
	if err := u.userRepo.SetJobPreferences(ctx, user.ID, titles); err != nil {
		return nil, apperror.Internal(err)
	}
	return titles, nil
}

func (u *profileUsecase) PushJobPreference(ctx context.Context, userID, title string) ([]string, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleJobSeeker {
		return nil, apperror.Forbidden("User is not a job seeker")
	}
	if title == "" {
		return nil, apperror.BadRequest("Job preference is required")
	}
	if err := u.userRepo.PushJobPreference(ctx, user.ID, title); err != nil {
		return nil, apperror.Internal(err)
	}
	return append(user.JobPreferences, title), nil
}

func (u *profileUsecase) GetJobPreferences(ctx context.Context, userID string) ([]string, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.JobPreferences == nil {
		return []string{}, nil
	}
	return user.JobPreferences, nil
}

func (u *profileUsecase) SetProfilePictureURL(ctx context.Context, userID, url string) error {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.userRepo.SetProfilePictureURL(ctx, user.ID, url); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) GetProfilePictureURL(ctx context.Context, userID string) (string, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.ProfilePictureURL, nil
}

func (u *profileUsecase) SetResumeURL(ctx context.Context, userID, url string) error {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.userRepo.SetResumeURL(ctx, user.ID, url); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) GetResumeURL(ctx context.Context, userID string) (string, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.ResumeURL, nil
}

func (u *profileUsecase) CheckRecruiterDataFilled(ctx context.Context, userID string) (bool, bool, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return false, false, err
	}
	return user.RecruiterDataID != nil, user.PersonalDataID != nil, nil
}

func (u *profileUsecase) CheckJobSeekerDataFilled(ctx context.Context, userID string) (bool, bool, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return false, false, err
	}
	return user.PersonalDataID != nil, len(user.EducationIDs) > 0, nil
}

func (u *profileUsecase) getUser(ctx context.Context, userID string) (*domain.User, error) {
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

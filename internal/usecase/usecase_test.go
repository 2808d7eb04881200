package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/notify"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) MarkEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	return m.Called(ctx, id, token, expiry).Error(0)
}
func (m *MockUserRepo) ReplacePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}
func (m *MockUserRepo) SetProfilePictureURL(ctx context.Context, id primitive.ObjectID, url string) error {
	return m.Called(ctx, id, url).Error(0)
}
func (m *MockUserRepo) SetResumeURL(ctx context.Context, id primitive.ObjectID, url string) error {
	return m.Called(ctx, id, url).Error(0)
}
func (m *MockUserRepo) SetJobPreferences(ctx context.Context, id primitive.ObjectID, preferences []string) error {
	return m.Called(ctx, id, preferences).Error(0)
}
func (m *MockUserRepo) PushJobPreference(ctx context.Context, id primitive.ObjectID, preference string) error {
	return m.Called(ctx, id, preference).Error(0)
}
func (m *MockUserRepo) FindByJobPreference(ctx context.Context, title string) ([]domain.User, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) FindByAppliedJob(ctx context.Context, jobID primitive.ObjectID) ([]domain.PublicProfile, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicProfile), args.Error(1)
}
func (m *MockUserRepo) SearchJobSeekers(ctx context.Context, text string) ([]domain.PublicProfile, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicProfile), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchByPoster(ctx context.Context, userID primitive.ObjectID) ([]domain.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) AddApplicant(ctx context.Context, jobID, userID primitive.ObjectID) error {
	return m.Called(ctx, jobID, userID).Error(0)
}
func (m *MockJobRepo) Search(ctx context.Context, text string) ([]domain.Job, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

type MockPersonalDataRepo struct {
	mock.Mock
}

func (m *MockPersonalDataRepo) Create(ctx context.Context, data *domain.PersonalData) error {
	return m.Called(ctx, data).Error(0)
}
func (m *MockPersonalDataRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.PersonalData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PersonalData), args.Error(1)
}
func (m *MockPersonalDataRepo) Update(ctx context.Context, data *domain.PersonalData) error {
	return m.Called(ctx, data).Error(0)
}

type MockSkillsRepo struct {
	mock.Mock
}

func (m *MockSkillsRepo) Create(ctx context.Context, set *domain.SkillSet) error {
	return m.Called(ctx, set).Error(0)
}
func (m *MockSkillsRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.SkillSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkillSet), args.Error(1)
}
func (m *MockSkillsRepo) Update(ctx context.Context, set *domain.SkillSet) error {
	return m.Called(ctx, set).Error(0)
}

type MockRecruiterDataRepo struct {
	mock.Mock
}

func (m *MockRecruiterDataRepo) Create(ctx context.Context, data *domain.RecruiterData) error {
	return m.Called(ctx, data).Error(0)
}
func (m *MockRecruiterDataRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.RecruiterData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruiterData), args.Error(1)
}
func (m *MockRecruiterDataRepo) Update(ctx context.Context, data *domain.RecruiterData) error {
	return m.Called(ctx, data).Error(0)
}

type MockEducationRepo struct {
	mock.Mock
}

func (m *MockEducationRepo) Create(ctx context.Context, edu *domain.Education) error {
	return m.Called(ctx, edu).Error(0)
}
func (m *MockEducationRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Education, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Education), args.Error(1)
}
func (m *MockEducationRepo) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Education, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Education), args.Error(1)
}
func (m *MockEducationRepo) Update(ctx context.Context, edu *domain.Education) error {
	return m.Called(ctx, edu).Error(0)
}
func (m *MockEducationRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockEmploymentRepo struct {
	mock.Mock
}

func (m *MockEmploymentRepo) Create(ctx context.Context, emp *domain.Employment) error {
	return m.Called(ctx, emp).Error(0)
}
func (m *MockEmploymentRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Employment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employment), args.Error(1)
}
func (m *MockEmploymentRepo) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Employment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employment), args.Error(1)
}
func (m *MockEmploymentRepo) Update(ctx context.Context, emp *domain.Employment) error {
	return m.Called(ctx, emp).Error(0)
}
func (m *MockEmploymentRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) VerificationEmail(to, token string)  { m.Called(to, token) }
func (m *MockNotifier) PasswordResetEmail(to, token string) { m.Called(to, token) }
func (m *MockNotifier) JobMatch(to string, job *domain.Job) { m.Called(to, job) }
func (m *MockNotifier) JobTitleUpdated(to string, job *domain.Job) {
	m.Called(to, job)
}
func (m *MockNotifier) ApplicationReceived(to, applicantUsername string, job *domain.Job) {
	m.Called(to, applicantUsername, job)
}

var _ notify.Notifier = (*MockNotifier)(nil)

const testSecret = "test-secret"

func newAuthUC(userRepo *MockUserRepo, notifier notify.Notifier) domain.AuthUsecase {
	if notifier == nil {
		notifier = notify.NewNoop()
	}
	return usecase.NewAuthUsecase(userRepo, notifier, testSecret, time.Hour)
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	assert.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	if assert.True(t, ok, "expected *apperror.AppError, got %T", err) {
		assert.Equal(t, code, appErr.Code)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown role", func(t *testing.T) {
		uc := newAuthUC(new(MockUserRepo), nil)
		err := uc.Register(ctx, "alice", "alice@example.com", "password123", "admin")
		assertCode(t, err, 400)
	})

	t.Run("Should reject short password", func(t *testing.T) {
		uc := newAuthUC(new(MockUserRepo), nil)
		err := uc.Register(ctx, "alice", "alice@example.com", "short", domain.RoleJobSeeker)
		assertCode(t, err, 400)
	})

	t.Run("Should conflict when username or email is taken", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(true, nil)

		uc := newAuthUC(userRepo, nil)
		err := uc.Register(ctx, "alice", "alice@example.com", "password123", domain.RoleJobSeeker)
		assertCode(t, err, 409)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should conflict when the unique index fires under a race", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(false, nil)
		userRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		uc := newAuthUC(userRepo, nil)
		err := uc.Register(ctx, "alice", "alice@example.com", "password123", domain.RoleJobSeeker)
		assertCode(t, err, 409)
	})

	t.Run("Should store a hash and send a verification email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		notifier := new(MockNotifier)
		userRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(false, nil)

		var created *domain.User
		userRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
		}).Return(nil)
		notifier.On("VerificationEmail", "alice@example.com", mock.Anything).Return()

		uc := newAuthUC(userRepo, notifier)
		err := uc.Register(ctx, "alice", "alice@example.com", "password123", domain.RoleJobSeeker)

		assert.NoError(t, err)
		assert.NotEqual(t, "password123", created.PasswordHash)
		assert.True(t, auth.CheckPasswordHash("password123", created.PasswordHash))
		assert.False(t, created.IsEmailVerified)
		assert.NotEmpty(t, created.VerificationToken)
		notifier.AssertCalled(t, "VerificationEmail", "alice@example.com", created.VerificationToken)
	})
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Should not reveal whether the token was consumed or never existed", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByVerificationToken", ctx, "gone").Return(nil, domain.ErrNotFound)

		uc := newAuthUC(userRepo, nil)
		err := uc.VerifyEmail(ctx, "gone")
		assertCode(t, err, 404)
		assert.Contains(t, err.Error(), "not found or already verified")
	})

	t.Run("Should mark the user verified", func(t *testing.T) {
		user := &domain.User{ID: primitive.NewObjectID(), VerificationToken: "tok"}
		userRepo := new(MockUserRepo)
		userRepo.On("GetByVerificationToken", ctx, "tok").Return(user, nil)
		userRepo.On("MarkEmailVerified", ctx, user.ID).Return(nil)

		uc := newAuthUC(userRepo, nil)
		assert.NoError(t, uc.VerifyEmail(ctx, "tok"))
		userRepo.AssertCalled(t, "MarkEmailVerified", ctx, user.ID)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := auth.HashPassword("password123")
	verified := &domain.User{
		ID:              primitive.NewObjectID(),
		Username:        "alice",
		Email:           "alice@example.com",
		PasswordHash:    hash,
		IsEmailVerified: true,
		Role:            domain.RoleJobSeeker,
	}

	t.Run("Should fail with the same message for unknown identifier and wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByIdentifier", ctx, "nobody").Return(nil, domain.ErrNotFound)
		userRepo.On("GetByIdentifier", ctx, "alice").Return(verified, nil)

		uc := newAuthUC(userRepo, nil)
		_, _, errUnknown := uc.Login(ctx, "nobody", "password123")
		_, _, errWrongPw := uc.Login(ctx, "alice", "wrong-password")

		assertCode(t, errUnknown, 401)
		assertCode(t, errWrongPw, 401)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})

	t.Run("Should reject unverified accounts", func(t *testing.T) {
		unverified := *verified
		unverified.IsEmailVerified = false
		userRepo := new(MockUserRepo)
		userRepo.On("GetByIdentifier", ctx, "alice").Return(&unverified, nil)

		uc := newAuthUC(userRepo, nil)
		_, _, err := uc.Login(ctx, "alice", "password123")
		assertCode(t, err, 401)
		assert.Contains(t, err.Error(), "not verified")
	})

	t.Run("Should return a token carrying the user id", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByIdentifier", ctx, "alice@example.com").Return(verified, nil)

		uc := newAuthUC(userRepo, nil)
		token, user, err := uc.Login(ctx, "alice@example.com", "password123")

		assert.NoError(t, err)
		assert.Equal(t, verified, user)
		subject, err := auth.ParseToken(testSecret, token)
		assert.NoError(t, err)
		assert.Equal(t, verified.ID.Hex(), subject)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should request a reset with a fresh token", func(t *testing.T) {
		user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
		userRepo := new(MockUserRepo)
		notifier := new(MockNotifier)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("SetResetToken", ctx, user.ID, mock.Anything, mock.Anything).Return(nil)
		notifier.On("PasswordResetEmail", user.Email, mock.Anything).Return()

		uc := newAuthUC(userRepo, notifier)
		assert.NoError(t, uc.RequestPasswordReset(ctx, user.Email))
		notifier.AssertNumberOfCalls(t, "PasswordResetEmail", 1)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		expired := time.Now().Add(-time.Minute)
		user := &domain.User{ID: primitive.NewObjectID(), ResetTokenExpiry: &expired}
		userRepo := new(MockUserRepo)
		userRepo.On("GetByResetToken", ctx, "tok").Return(user, nil)

		uc := newAuthUC(userRepo, nil)
		err := uc.ResetPassword(ctx, "tok", "newpassword123")
		assertCode(t, err, 401)
		userRepo.AssertNotCalled(t, "ReplacePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should replace the password while the token is live", func(t *testing.T) {
		future := time.Now().Add(30 * time.Minute)
		user := &domain.User{ID: primitive.NewObjectID(), ResetTokenExpiry: &future}
		userRepo := new(MockUserRepo)
		userRepo.On("GetByResetToken", ctx, "tok").Return(user, nil)
		userRepo.On("ReplacePassword", ctx, user.ID, mock.Anything).Return(nil)

		uc := newAuthUC(userRepo, nil)
		assert.NoError(t, uc.ResetPassword(ctx, "tok", "newpassword123"))
		userRepo.AssertCalled(t, "ReplacePassword", ctx, user.ID, mock.Anything)
	})
}

func newProfileUC(userRepo *MockUserRepo, pd *MockPersonalDataRepo, sk *MockSkillsRepo, edu *MockEducationRepo, emp *MockEmploymentRepo) domain.ProfileUsecase {
	return usecase.NewProfileUsecase(userRepo, pd, sk, edu, emp, ";", ",")
}

func TestPersonalData(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()

	t.Run("Should conflict on a second personal data record", func(t *testing.T) {
		pdRepo := new(MockPersonalDataRepo)
		pdRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		uc := newProfileUC(new(MockUserRepo), pdRepo, new(MockSkillsRepo), new(MockEducationRepo), new(MockEmploymentRepo))
		err := uc.AddPersonalData(ctx, uid.Hex(), &domain.PersonalData{FullName: "Alice"})
		assertCode(t, err, 409)
	})

	t.Run("Should take ownership from the authenticated user id", func(t *testing.T) {
		pdRepo := new(MockPersonalDataRepo)
		var created *domain.PersonalData
		pdRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.PersonalData)
		}).Return(nil)

		uc := newProfileUC(new(MockUserRepo), pdRepo, new(MockSkillsRepo), new(MockEducationRepo), new(MockEmploymentRepo))
		data := &domain.PersonalData{UserID: primitive.NewObjectID(), FullName: "Alice"}
		assert.NoError(t, uc.AddPersonalData(ctx, uid.Hex(), data))
		assert.Equal(t, uid, created.UserID)
	})
}

func TestSkillsParsing(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()

	skRepo := new(MockSkillsRepo)
	var created *domain.SkillSet
	skRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.SkillSet)
	}).Return(nil)

	uc := newProfileUC(new(MockUserRepo), new(MockPersonalDataRepo), skRepo, new(MockEducationRepo), new(MockEmploymentRepo))
	set, err := uc.PostSkills(ctx, uid.Hex(), " Go ; MongoDB ;; Docker ")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Go", "MongoDB", "Docker"}, set.Skills)
	assert.Equal(t, created, set)

	_, err = uc.PostSkills(ctx, uid.Hex(), " ; ;")
	assertCode(t, err, 400)
}

func TestEducation(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()
	eid := primitive.NewObjectID()

	t.Run("Should read another user's entry as absent", func(t *testing.T) {
		eduRepo := new(MockEducationRepo)
		eduRepo.On("GetByID", ctx, eid, uid).Return(nil, domain.ErrNotFound)

		uc := newProfileUC(new(MockUserRepo), new(MockPersonalDataRepo), new(MockSkillsRepo), eduRepo, new(MockEmploymentRepo))
		_, err := uc.GetEducation(ctx, uid.Hex(), eid.Hex())
		assertCode(t, err, 404)
	})

	t.Run("Should reject a graduation date in the future", func(t *testing.T) {
		uc := newProfileUC(new(MockUserRepo), new(MockPersonalDataRepo), new(MockSkillsRepo), new(MockEducationRepo), new(MockEmploymentRepo))
		err := uc.AddEducation(ctx, uid.Hex(), &domain.Education{
			School:         "MIT",
			Degree:         "BSc",
			GraduationDate: time.Now().Add(24 * time.Hour),
		})
		assertCode(t, err, 400)
	})

	t.Run("Should patch only the provided fields", func(t *testing.T) {
		grad := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
		existing := &domain.Education{ID: eid, UserID: uid, School: "MIT", Degree: "BSc", GraduationDate: grad}
		eduRepo := new(MockEducationRepo)
		eduRepo.On("GetByID", ctx, eid, uid).Return(existing, nil)
		eduRepo.On("Update", ctx, mock.Anything).Return(nil)

		uc := newProfileUC(new(MockUserRepo), new(MockPersonalDataRepo), new(MockSkillsRepo), eduRepo, new(MockEmploymentRepo))
		degree := "MSc"
		updated, err := uc.EditEducation(ctx, uid.Hex(), eid.Hex(), &domain.EducationPatch{Degree: &degree})

		assert.NoError(t, err)
		assert.Equal(t, "MSc", updated.Degree)
		assert.Equal(t, "MIT", updated.School)
		assert.Equal(t, grad, updated.GraduationDate)
	})
}

func TestEmploymentEndDate(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()
	eid := primitive.NewObjectID()
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should reject an end date before the start date", func(t *testing.T) {
		uc := newProfileUC(new(MockUserRepo), new(MockPersonalDataRepo), new(MockSkillsRepo), new(MockEducationRepo), new(MockEmploymentRepo))
		bad := start.Add(-time.Hour)
		err := uc.AddEmployment(ctx, uid.Hex(), &domain.Employment{
			Company:   "Acme",
			Position:  "Engineer",
			StartDate: start,
			EndDate:   &bad,
		})
		assertCode(t, err, 400)
	})

	t.Run("Should clear the end date to mark a position current", func(t *testing.T) {
		existing := &domain.Employment{ID: eid, UserID: uid, Company: "Acme", Position: "Engineer", StartDate: start, EndDate: &end}
		empRepo := new(MockEmploymentRepo)
		empRepo.On("GetByID", ctx, eid, uid).Return(existing, nil)
		empRepo.On("Update", ctx, mock.Anything).Return(nil)

		uc := newProfileUC(new(MockUserRepo), new(MockPersonalDataRepo), new(MockSkillsRepo), new(MockEducationRepo), empRepo)
		updated, err := uc.EditEmployment(ctx, uid.Hex(), eid.Hex(), &domain.EmploymentPatch{ClearEndDate: true})

		assert.NoError(t, err)
		assert.Nil(t, updated.EndDate)
	})
}

func TestJobPreferencesRoleGate(t *testing.T) {
	ctx := context.Background()
	recruiter := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleRecruiter}

	newUC := func() (*MockUserRepo, domain.ProfileUsecase) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, recruiter.ID).Return(recruiter, nil)
		return userRepo, newProfileUC(userRepo, new(MockPersonalDataRepo), new(MockSkillsRepo), new(MockEducationRepo), new(MockEmploymentRepo))
	}

	t.Run("Should forbid recruiters from replacing preferences", func(t *testing.T) {
		userRepo, uc := newUC()
		_, err := uc.SetJobPreferences(ctx, recruiter.ID.Hex(), "Backend Engineer, SRE")
		assertCode(t, err, 403)
		userRepo.AssertNotCalled(t, "SetJobPreferences", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should forbid recruiters from pushing a preference", func(t *testing.T) {
		userRepo, uc := newUC()
		_, err := uc.PushJobPreference(ctx, recruiter.ID.Hex(), "SRE")
		assertCode(t, err, 403)
		userRepo.AssertNotCalled(t, "PushJobPreference", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecruiterData(t *testing.T) {
	ctx := context.Background()
	seeker := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleJobSeeker}
	recruiter := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleRecruiter}

	t.Run("Should forbid job seekers", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, seeker.ID).Return(seeker, nil)

		uc := usecase.NewRecruiterUsecase(userRepo, new(MockRecruiterDataRepo))
		err := uc.PostRecruiterData(ctx, seeker.ID.Hex(), &domain.RecruiterData{CompanyName: "Acme"})
		assertCode(t, err, 403)
	})

	t.Run("Should conflict on a second record", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		rdRepo := new(MockRecruiterDataRepo)
		userRepo.On("GetByID", ctx, recruiter.ID).Return(recruiter, nil)
		rdRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		uc := usecase.NewRecruiterUsecase(userRepo, rdRepo)
		err := uc.PostRecruiterData(ctx, recruiter.ID.Hex(), &domain.RecruiterData{CompanyName: "Acme"})
		assertCode(t, err, 409)
	})

	t.Run("Should gate the job seeker directory by role", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, seeker.ID).Return(seeker, nil)

		uc := usecase.NewRecruiterUsecase(userRepo, new(MockRecruiterDataRepo))
		_, err := uc.SearchJobSeekers(ctx, seeker.ID.Hex(), "golang")
		assertCode(t, err, 403)
	})
}

func newJobUC(jobRepo *MockJobRepo, userRepo *MockUserRepo, notifier notify.Notifier) domain.JobUsecase {
	if notifier == nil {
		notifier = notify.NewNoop()
	}
	return usecase.NewJobUsecase(jobRepo, userRepo, notifier, ",")
}

func TestPostJob(t *testing.T) {
	ctx := context.Background()
	seeker := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleJobSeeker}
	recruiter := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleRecruiter}

	t.Run("Should forbid job seekers", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, seeker.ID).Return(seeker, nil)

		uc := newJobUC(new(MockJobRepo), userRepo, nil)
		_, err := uc.PostJob(ctx, seeker.ID.Hex(), &domain.Job{
			Title: "SRE", Description: "d", Company: "Acme", Location: "Remote",
		}, "", "")
		assertCode(t, err, 403)
	})

	t.Run("Should split delimited lists and notify preference matches", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		notifier := new(MockNotifier)
		subscriber := domain.User{ID: primitive.NewObjectID(), Email: "bob@example.com", JobPreferences: []string{"SRE"}}

		userRepo.On("GetByID", ctx, recruiter.ID).Return(recruiter, nil)
		jobRepo.On("Create", ctx, mock.Anything).Return(nil)
		userRepo.On("FindByJobPreference", ctx, "SRE").Return([]domain.User{subscriber}, nil)
		notifier.On("JobMatch", "bob@example.com", mock.Anything).Return()

		uc := newJobUC(jobRepo, userRepo, notifier)
		job, err := uc.PostJob(ctx, recruiter.ID.Hex(), &domain.Job{
			Title: "SRE", Description: "d", Company: "Acme", Location: "Remote",
		}, "5y experience, on-call", "Go,Kubernetes")

		assert.NoError(t, err)
		assert.Equal(t, recruiter.ID, job.PostedBy)
		assert.Equal(t, []string{"5y experience", "on-call"}, job.Requirements)
		assert.Equal(t, []string{"Go", "Kubernetes"}, job.Skills)
		notifier.AssertNumberOfCalls(t, "JobMatch", 1)
	})
}

func TestEditJob(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	jobID := primitive.NewObjectID()

	job := func() *domain.Job {
		return &domain.Job{ID: jobID, Title: "SRE", Description: "d", Company: "Acme", Location: "Remote", PostedBy: owner}
	}

	t.Run("Should forbid non-owners", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, jobID).Return(job(), nil)

		uc := newJobUC(jobRepo, new(MockUserRepo), nil)
		title := "Platform Engineer"
		_, err := uc.EditJob(ctx, stranger.Hex(), jobID.Hex(), &domain.JobPatch{Title: &title})
		assertCode(t, err, 403)
		jobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should notify subscribers of the original title on rename", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		userRepo := new(MockUserRepo)
		notifier := new(MockNotifier)
		subscriber := domain.User{Email: "bob@example.com"}

		jobRepo.On("GetByID", ctx, jobID).Return(job(), nil)
		jobRepo.On("Update", ctx, mock.Anything).Return(nil)
		userRepo.On("FindByJobPreference", ctx, "SRE").Return([]domain.User{subscriber}, nil)
		notifier.On("JobTitleUpdated", "bob@example.com", mock.Anything).Return()

		uc := newJobUC(jobRepo, userRepo, notifier)
		title := "Platform Engineer"
		updated, err := uc.EditJob(ctx, owner.Hex(), jobID.Hex(), &domain.JobPatch{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, "Platform Engineer", updated.Title)
		// Lookup runs against the title subscribers actually opted into.
		userRepo.AssertCalled(t, "FindByJobPreference", ctx, "SRE")
		notifier.AssertNumberOfCalls(t, "JobTitleUpdated", 1)
	})

	t.Run("Should not notify when the title is unchanged", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		userRepo := new(MockUserRepo)
		notifier := new(MockNotifier)

		jobRepo.On("GetByID", ctx, jobID).Return(job(), nil)
		jobRepo.On("Update", ctx, mock.Anything).Return(nil)

		uc := newJobUC(jobRepo, userRepo, notifier)
		location := "Berlin"
		_, err := uc.EditJob(ctx, owner.Hex(), jobID.Hex(), &domain.JobPatch{Location: &location})

		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "FindByJobPreference", mock.Anything, mock.Anything)
	})
}

func TestApplyForJob(t *testing.T) {
	ctx := context.Background()
	seeker := &domain.User{ID: primitive.NewObjectID(), Username: "alice", Role: domain.RoleJobSeeker}
	poster := &domain.User{ID: primitive.NewObjectID(), Email: "hr@acme.com", Role: domain.RoleRecruiter}
	job := &domain.Job{ID: primitive.NewObjectID(), Title: "SRE", PostedBy: poster.ID}

	t.Run("Should forbid recruiters", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, poster.ID).Return(poster, nil)

		uc := newJobUC(new(MockJobRepo), userRepo, nil)
		err := uc.ApplyForJob(ctx, poster.ID.Hex(), job.ID.Hex())
		assertCode(t, err, 403)
	})

	t.Run("Should conflict on a duplicate application", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		userRepo.On("GetByID", ctx, seeker.ID).Return(seeker, nil)
		jobRepo.On("GetByID", ctx, job.ID).Return(job, nil)
		jobRepo.On("AddApplicant", ctx, job.ID, seeker.ID).Return(domain.ErrDuplicate)

		uc := newJobUC(jobRepo, userRepo, nil)
		err := uc.ApplyForJob(ctx, seeker.ID.Hex(), job.ID.Hex())
		assertCode(t, err, 409)
	})

	t.Run("Should record the application and notify the poster", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		notifier := new(MockNotifier)
		userRepo.On("GetByID", ctx, seeker.ID).Return(seeker, nil)
		userRepo.On("GetByID", ctx, poster.ID).Return(poster, nil)
		jobRepo.On("GetByID", ctx, job.ID).Return(job, nil)
		jobRepo.On("AddApplicant", ctx, job.ID, seeker.ID).Return(nil)
		notifier.On("ApplicationReceived", "hr@acme.com", "alice", job).Return()

		uc := newJobUC(jobRepo, userRepo, notifier)
		assert.NoError(t, uc.ApplyForJob(ctx, seeker.ID.Hex(), job.ID.Hex()))
		notifier.AssertCalled(t, "ApplicationReceived", "hr@acme.com", "alice", job)
	})
}

func TestListJobsAnnotatesApplied(t *testing.T) {
	ctx := context.Background()
	applied := primitive.NewObjectID()
	other := primitive.NewObjectID()
	seeker := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleJobSeeker}

	userRepo := new(MockUserRepo)
	jobRepo := new(MockJobRepo)
	userRepo.On("GetByID", ctx, seeker.ID).Return(seeker, nil)
	jobRepo.On("Fetch", ctx).Return([]domain.Job{
		{ID: applied, Title: "SRE", Applicants: []primitive.ObjectID{seeker.ID}},
		{ID: other, Title: "Designer"},
	}, nil)

	uc := newJobUC(jobRepo, userRepo, nil)
	jobs, err := uc.ListJobs(ctx, seeker.ID.Hex())

	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.True(t, jobs[0].Applied)
	assert.False(t, jobs[1].Applied)
}

func TestListApplicantsOwnership(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	job := &domain.Job{ID: primitive.NewObjectID(), PostedBy: owner}

	jobRepo := new(MockJobRepo)
	jobRepo.On("GetByID", ctx, job.ID).Return(job, nil)

	uc := newJobUC(jobRepo, new(MockUserRepo), nil)
	_, err := uc.ListApplicants(ctx, stranger.Hex(), job.ID.Hex())
	assertCode(t, err, 403)
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	job := &domain.Job{ID: primitive.NewObjectID(), PostedBy: owner}

	jobRepo := new(MockJobRepo)
	jobRepo.On("GetByID", ctx, job.ID).Return(job, nil)
	jobRepo.On("Delete", ctx, job.ID).Return(nil)

	uc := newJobUC(jobRepo, new(MockUserRepo), nil)
	assert.NoError(t, uc.DeleteJob(ctx, owner.Hex(), job.ID.Hex()))
	jobRepo.AssertCalled(t, "Delete", ctx, job.ID)
}

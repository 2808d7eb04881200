package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalData is a one-per-user child record.
type PersonalData struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	FullName    string             `json:"fullName" bson:"fullName"`
	DateOfBirth *time.Time         `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
}

// SkillSet is a one-per-user child record holding the parsed skill list.
type SkillSet struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	Skills []string           `json:"skills" bson:"skills"`
}

// RecruiterData is a one-per-user child record, legal only for recruiters.
type RecruiterData struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId"`
	CompanyName    string             `json:"companyName" bson:"companyName"`
	CompanySize    int                `json:"companySize,omitempty" bson:"companySize,omitempty"`
	CompanyAddress string             `json:"companyAddress,omitempty" bson:"companyAddress,omitempty"`
	Industry       string             `json:"industry,omitempty" bson:"industry,omitempty"`
}

// Education is a many-per-user child record.
type Education struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId"`
	School         string             `json:"school" bson:"school"`
	Degree         string             `json:"degree" bson:"degree"`
	FieldOfStudy   string             `json:"fieldOfStudy,omitempty" bson:"fieldOfStudy,omitempty"`
	GraduationDate time.Time          `json:"graduationDate" bson:"graduationDate"`
}

// Employment is a many-per-user child record. A nil EndDate means the
// position is current.
type Employment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Company   string             `json:"company" bson:"company"`
	Position  string             `json:"position" bson:"position"`
	StartDate time.Time          `json:"startDate" bson:"startDate"`
	EndDate   *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
}

// Patch types carry partial updates. A nil field is absent and leaves the
// stored value unchanged; a set field overwrites it.

type PersonalDataPatch struct {
	FullName    *string
	DateOfBirth *time.Time
	Address     *string
}

type RecruiterDataPatch struct {
	CompanyName    *string
	CompanySize    *int
	CompanyAddress *string
	Industry       *string
}

type EducationPatch struct {
	School         *string
	Degree         *string
	FieldOfStudy   *string
	GraduationDate *time.Time
}

type EmploymentPatch struct {
	Company   *string
	Position  *string
	StartDate *time.Time
	EndDate   *time.Time
	// ClearEndDate marks the position as current again. Distinct from a nil
	// EndDate, which means "leave unchanged".
	ClearEndDate bool
}

// One-per-user repositories. Create inserts the child and sets the owning
// User's reference field as one atomic unit, returning ErrDuplicate when an
// instance already exists for the user.

type PersonalDataRepository interface {
	Create(ctx context.Context, data *PersonalData) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*PersonalData, error)
	Update(ctx context.Context, data *PersonalData) error
}

type SkillsRepository interface {
	Create(ctx context.Context, set *SkillSet) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*SkillSet, error)
	Update(ctx context.Context, set *SkillSet) error
}

type RecruiterDataRepository interface {
	Create(ctx context.Context, data *RecruiterData) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*RecruiterData, error)
	Update(ctx context.Context, data *RecruiterData) error
}

// Many-per-user repositories. Create appends the child id to the owning
// User's list and Delete retracts it, each as one atomic unit. Lookups take
// the (id, userID) pair so another user's record is indistinguishable from
// an absent one.

type EducationRepository interface {
	Create(ctx context.Context, edu *Education) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]Education, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*Education, error)
	Update(ctx context.Context, edu *Education) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

type EmploymentRepository interface {
	Create(ctx context.Context, emp *Employment) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]Employment, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*Employment, error)
	Update(ctx context.Context, emp *Employment) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

type ProfileUsecase interface {
	AddPersonalData(ctx context.Context, userID string, data *PersonalData) error
	GetPersonalData(ctx context.Context, userID string) (*PersonalData, error)
	EditPersonalData(ctx context.Context, userID string, patch *PersonalDataPatch) (*PersonalData, error)

	PostSkills(ctx context.Context, userID, skillsText string) (*SkillSet, error)
	GetSkills(ctx context.Context, userID string) (*SkillSet, error)
	EditSkills(ctx context.Context, userID, skillsText string) (*SkillSet, error)

	AddEducation(ctx context.Context, userID string, edu *Education) error
	GetEducations(ctx context.Context, userID string) ([]Education, error)
	GetEducation(ctx context.Context, userID, educationID string) (*Education, error)
	EditEducation(ctx context.Context, userID, educationID string, patch *EducationPatch) (*Education, error)
	DeleteEducation(ctx context.Context, userID, educationID string) error

	AddEmployment(ctx context.Context, userID string, emp *Employment) error
	GetEmployments(ctx context.Context, userID string) ([]Employment, error)
	GetEmployment(ctx context.Context, userID, employmentID string) (*Employment, error)
	EditEmployment(ctx context.Context, userID, employmentID string, patch *EmploymentPatch) (*Employment, error)
	DeleteEmployment(ctx context.Context, userID, employmentID string) error

	SetJobPreferences(ctx context.Context, userID, titlesText string) ([]string, error)
	PushJobPreference(ctx context.Context, userID, title string) ([]string, error)
	GetJobPreferences(ctx context.Context, userID string) ([]string, error)

	SetProfilePictureURL(ctx context.Context, userID, url string) error
	GetProfilePictureURL(ctx context.Context, userID string) (string, error)
	SetResumeURL(ctx context.Context, userID, url string) error
	GetResumeURL(ctx context.Context, userID string) (string, error)

	CheckRecruiterDataFilled(ctx context.Context, userID string) (hasRecruiterData, hasPersonalData bool, err error)
	CheckJobSeekerDataFilled(ctx context.Context, userID string) (hasPersonalData, hasEducation bool, err error)
}

type RecruiterUsecase interface {
	PostRecruiterData(ctx context.Context, userID string, data *RecruiterData) error
	GetRecruiterData(ctx context.Context, userID string) (*RecruiterData, error)
	UpdateRecruiterData(ctx context.Context, userID string, patch *RecruiterDataPatch) (*RecruiterData, error)
	SearchJobSeekers(ctx context.Context, userID, text string) ([]PublicProfile, error)
}

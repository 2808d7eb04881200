package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleJobSeeker Role = "jobSeeker"
	RoleRecruiter Role = "recruiter"
)

// User is the identity root. Role is immutable after creation and gates
// which optional reference fields may be populated (RecruiterDataID only for
// recruiters). The forward reference lists must always agree with the child
// collections' userId back-references.
type User struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username          string               `json:"username" bson:"username"`
	Email             string               `json:"email" bson:"email"`
	PasswordHash      string               `json:"-" bson:"password"`
	IsEmailVerified   bool                 `json:"isEmailVerified" bson:"isEmailVerified"`
	VerificationToken string               `json:"-" bson:"verificationToken,omitempty"`
	Role              Role                 `json:"role" bson:"role"`
	ProfilePictureURL string               `json:"profilePictureUrl,omitempty" bson:"profilePictureUrl,omitempty"`
	ResumeURL         string               `json:"resumeUrl,omitempty" bson:"resumeUrl,omitempty"`
	JobPreferences    []string             `json:"jobPreferences,omitempty" bson:"jobPreferences,omitempty"`
	AppliedJobs       []primitive.ObjectID `json:"appliedJobs,omitempty" bson:"appliedJobs,omitempty"`
	PersonalDataID    *primitive.ObjectID  `json:"personalData,omitempty" bson:"personalData,omitempty"`
	SkillsID          *primitive.ObjectID  `json:"skills,omitempty" bson:"skills,omitempty"`
	RecruiterDataID   *primitive.ObjectID  `json:"recruiterData,omitempty" bson:"recruiterData,omitempty"`
	EducationIDs      []primitive.ObjectID `json:"educations,omitempty" bson:"educations,omitempty"`
	EmploymentIDs     []primitive.ObjectID `json:"employments,omitempty" bson:"employments,omitempty"`
	ResetToken        string               `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiry  *time.Time           `json:"-" bson:"resetTokenExpiry,omitempty"`
	CreatedAt         time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasAppliedTo reports whether the job id is in the user's applied set.
func (u *User) HasAppliedTo(jobID primitive.ObjectID) bool {
	for _, id := range u.AppliedJobs {
		if id == jobID {
			return true
		}
	}
	return false
}

// PublicProfile is the subset of User exposed to other users (applicant
// listings, job-seeker directory search).
type PublicProfile struct {
	ID                primitive.ObjectID `json:"id" bson:"_id"`
	Username          string             `json:"username" bson:"username"`
	Email             string             `json:"email" bson:"email"`
	ProfilePictureURL string             `json:"profilePictureUrl,omitempty" bson:"profilePictureUrl,omitempty"`
	ResumeURL         string             `json:"resumeUrl,omitempty" bson:"resumeUrl,omitempty"`
}

type UserRepository interface {
	// Create returns ErrDuplicate when username or email is already taken.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	// GetByIdentifier resolves a login identifier by email or username.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// MarkEmailVerified sets the verified flag and clears the one-time token.
	MarkEmailVerified(ctx context.Context, id primitive.ObjectID) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error
	// ReplacePassword swaps the hash and clears any outstanding reset token.
	ReplacePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	SetProfilePictureURL(ctx context.Context, id primitive.ObjectID, url string) error
	SetResumeURL(ctx context.Context, id primitive.ObjectID, url string) error
	SetJobPreferences(ctx context.Context, id primitive.ObjectID, preferences []string) error
	PushJobPreference(ctx context.Context, id primitive.ObjectID, preference string) error

	// FindByJobPreference returns users whose preference list contains the
	// title (exact, case-sensitive membership).
	FindByJobPreference(ctx context.Context, title string) ([]User, error)
	FindByAppliedJob(ctx context.Context, jobID primitive.ObjectID) ([]PublicProfile, error)
	SearchJobSeekers(ctx context.Context, text string) ([]PublicProfile, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string, role Role) error
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, identifier, password string) (string, *User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	// GetCurrentUser re-derives identity and role from storage for the
	// authorization gate; tokens are never trusted for role.
	GetCurrentUser(ctx context.Context, userID string) (*User, error)
}

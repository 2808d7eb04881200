package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job is owned by exactly one recruiter. PostedBy is immutable after
// creation. Applicants and the owning users' AppliedJobs lists form a
// symmetric relation; applications accrue monotonically until the job is
// deleted.
type Job struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title        string               `json:"title" bson:"title"`
	Description  string               `json:"description" bson:"description"`
	Company      string               `json:"company" bson:"company"`
	Location     string               `json:"location" bson:"location"`
	Requirements []string             `json:"requirements" bson:"requirements"`
	Skills       []string             `json:"skills" bson:"skills"`
	PostedBy     primitive.ObjectID   `json:"postedBy" bson:"postedBy"`
	Applicants   []primitive.ObjectID `json:"applicants,omitempty" bson:"applicants,omitempty"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasApplicant reports whether the user id is in the job's applicant set.
func (j *Job) HasApplicant(userID primitive.ObjectID) bool {
	for _, id := range j.Applicants {
		if id == userID {
			return true
		}
	}
	return false
}

// JobWithApplied annotates a job with whether the requesting user applied.
type JobWithApplied struct {
	Job
	Applied bool `json:"applied"`
}

// JobPatch carries a partial job update. Requirements and Skills arrive as
// delimited text and replace the stored lists when present.
type JobPatch struct {
	Title        *string
	Description  *string
	Company      *string
	Location     *string
	Requirements *string
	Skills       *string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Job, error)
	// Fetch returns all jobs ordered by most-recently-updated first.
	Fetch(ctx context.Context) ([]Job, error)
	FetchByPoster(ctx context.Context, userID primitive.ObjectID) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	// Delete removes the job and retracts its id from every applicant's
	// applied list as one atomic unit.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddApplicant records the application on both sides of the relation as
	// one atomic unit, returning ErrDuplicate if the user already applied.
	AddApplicant(ctx context.Context, jobID, userID primitive.ObjectID) error
	// Search matches text case-insensitively across title, description and
	// skills.
	Search(ctx context.Context, text string) ([]Job, error)
}

type JobUsecase interface {
	PostJob(ctx context.Context, userID string, job *Job, requirementsText, skillsText string) (*Job, error)
	GetJob(ctx context.Context, jobID string) (*Job, error)
	ListJobs(ctx context.Context, userID string) ([]JobWithApplied, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]Job, error)
	EditJob(ctx context.Context, userID, jobID string, patch *JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, userID, jobID string) error
	ApplyForJob(ctx context.Context, userID, jobID string) error
	ListApplicants(ctx context.Context, userID, jobID string) ([]PublicProfile, error)
	SearchJobs(ctx context.Context, text string) ([]Job, error)
}

package mongodb_test

import (
	"context"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/mongodb"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// startedCommandNames drains the command monitor queue.
func startedCommandNames(mt *mtest.T) []string {
	var names []string
	for {
		evt := mt.GetStartedEvent()
		if evt == nil {
			return names
		}
		names = append(names, evt.CommandName)
	}
}

func TestJobUpdateTouchesOnlyEditableFields(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Should $set edited fields and leave the applicant list alone", func(mt *mtest.T) {
		repo := mongodb.NewJobRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		// A stale snapshot: read before someone else's application landed.
		job := &domain.Job{
			ID:       primitive.NewObjectID(),
			Title:    "SRE",
			Location: "Berlin",
			PostedBy: primitive.NewObjectID(),
		}
		err := repo.Update(context.Background(), job)
		assert.NoError(t, err)

		evt := mt.GetStartedEvent()
		if !assert.NotNil(t, evt) {
			return
		}
		assert.Equal(t, "update", evt.CommandName)

		updates, err := evt.Command.LookupErr("updates")
		assert.NoError(t, err)
		statements, err := updates.Array().Values()
		assert.NoError(t, err)
		if !assert.Len(t, statements, 1) {
			return
		}

		// An update document, not a full replacement.
		u := statements[0].Document().Lookup("u").Document()
		set, err := u.LookupErr("$set")
		assert.NoError(t, err, "expected a $set update, got %s", u.String())

		for _, field := range []string{"title", "description", "company", "location", "requirements", "skills", "updatedAt"} {
			_, err := set.Document().LookupErr(field)
			assert.NoError(t, err, "editable field %q missing from $set", field)
		}
		for _, field := range []string{"applicants", "postedBy", "createdAt"} {
			_, err := set.Document().LookupErr(field)
			assert.Error(t, err, "field %q must never be written by an edit", field)
		}
	})

	mt.Run("Should report an absent job", func(mt *mtest.T) {
		repo := mongodb.NewJobRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), &domain.Job{ID: primitive.NewObjectID()})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEducationCreateTransaction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	edu := func() *domain.Education {
		return &domain.Education{UserID: primitive.NewObjectID(), School: "MIT", Degree: "BSc"}
	}

	mt.Run("Should commit when both writes land", func(mt *mtest.T) {
		repo := mongodb.NewEducationRepository(mt.Client, mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		assert.NoError(t, repo.Create(context.Background(), edu()))

		names := startedCommandNames(mt)
		assert.Contains(t, names, "commitTransaction")
	})

	mt.Run("Should abort when the child insert fails after the parent push", func(mt *mtest.T) {
		repo := mongodb.NewEducationRepository(mt.Client, mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    8000,
				Name:    "CommandFailed",
				Message: "insert failed",
			}),
			mtest.CreateSuccessResponse(),
		)

		err := repo.Create(context.Background(), edu())
		assert.Error(t, err)

		names := startedCommandNames(mt)
		assert.Contains(t, names, "abortTransaction")
		assert.NotContains(t, names, "commitTransaction")
	})
}

func TestAddApplicantTransaction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Should abort when the applicant side lands but the user side fails", func(mt *mtest.T) {
		repo := mongodb.NewJobRepository(mt.Client, mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    8000,
				Name:    "CommandFailed",
				Message: "update failed",
			}),
			mtest.CreateSuccessResponse(),
		)

		err := repo.AddApplicant(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.Error(t, err)

		names := startedCommandNames(mt)
		assert.Contains(t, names, "abortTransaction")
		assert.NotContains(t, names, "commitTransaction")
	})
}

func TestOnePerUserCreateTransaction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Should abort when the insert fails after the reference claim", func(mt *mtest.T) {
		repo := mongodb.NewPersonalDataRepository(mt.Client, mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    8000,
				Name:    "CommandFailed",
				Message: "insert failed",
			}),
			mtest.CreateSuccessResponse(),
		)

		err := repo.Create(context.Background(), &domain.PersonalData{
			UserID:   primitive.NewObjectID(),
			FullName: "Alice",
		})
		assert.Error(t, err)

		names := startedCommandNames(mt)
		assert.Contains(t, names, "abortTransaction")
		assert.NotContains(t, names, "commitTransaction")
	})
}

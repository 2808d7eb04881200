package mongodb

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type jobRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewJobRepository(client *mongo.Client, db *mongo.Database) domain.JobRepository {
	return &jobRepo{client: client, db: db}
}

func (r *jobRepo) col() *mongo.Collection {
	return r.db.Collection(jobsCollection)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, job)
	if err != nil {
		return err
	}
	job.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	var job domain.Job
	if err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		return nil, mapFindErr(err)
	}
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	return r.find(ctx, bson.M{})
}

func (r *jobRepo) FetchByPoster(ctx context.Context, userID primitive.ObjectID) ([]domain.Job, error) {
	return r.find(ctx, bson.M{"postedBy": userID})
}

func (r *jobRepo) find(ctx context.Context, filter bson.M) ([]domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now()
	// $set only the editable fields. A full-document replace would write the
	// applicants snapshot read before the edit, erasing any application that
	// committed in between; applicants, postedBy and createdAt are never
	// touched here.
	res, err := r.col().UpdateOne(ctx, bson.M{"_id": job.ID}, bson.M{"$set": bson.M{
		"title":        job.Title,
		"description":  job.Description,
		"company":      job.Company,
		"location":     job.Location,
		"requirements": job.Requirements,
		"skills":       job.Skills,
		"updatedAt":    job.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Cascade: retract the job from every applicant's applied list so no
	// dangling references survive the delete.
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		res, err := r.col().DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return domain.ErrNotFound
		}
		_, err = r.db.Collection(usersCollection).UpdateMany(sc,
			bson.M{"appliedJobs": id},
			bson.M{"$pull": bson.M{"appliedJobs": id}},
		)
		return err
	})
}

func (r *jobRepo) AddApplicant(ctx context.Context, jobID, userID primitive.ObjectID) error {
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		// The $ne guard makes concurrent duplicate applies lose the race
		// instead of both landing.
		res, err := r.col().UpdateOne(sc,
			bson.M{"_id": jobID, "applicants": bson.M{"$ne": userID}},
			bson.M{"$addToSet": bson.M{"applicants": userID}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			count, err := r.col().CountDocuments(sc, bson.M{"_id": jobID})
			if err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrDuplicate
		}

		ures, err := r.db.Collection(usersCollection).UpdateOne(sc,
			bson.M{"_id": userID},
			bson.M{"$addToSet": bson.M{"appliedJobs": jobID}},
		)
		if err != nil {
			return err
		}
		if ures.MatchedCount == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *jobRepo) Search(ctx context.Context, text string) ([]domain.Job, error) {
	pattern := primitive.Regex{Pattern: regexEscape(text), Options: "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
		bson.M{"skills": pattern},
	}})
}

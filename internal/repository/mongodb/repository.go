package mongodb

import (
	"context"
	"errors"
	"regexp"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	personalDataCollection  = "personal_data"
	skillsCollection        = "skills"
	recruiterDataCollection = "recruiter_data"
	educationsCollection    = "educations"
	employmentsCollection   = "employments"
	jobsCollection          = "jobs"
)

// withTransaction runs fn inside a multi-document transaction so paired
// writes (child insert + parent reference, applicant + appliedJobs) are
// never observed half-applied. Requires a replica-set deployment.
func withTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// regexEscape neutralizes regex metacharacters in user-supplied search text
// so substring searches cannot be turned into arbitrary patterns.
func regexEscape(text string) string {
	return regexp.QuoteMeta(text)
}

// mapFindErr translates the driver's no-document sentinel into the domain one.
func mapFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

// EnsureIndexes creates the unique indexes the data model relies on:
// username/email uniqueness on users and the one-per-user constraint on the
// single-instance child collections. The userId indexes are a backstop; the
// conditional parent-reference claim is the primary guard.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}

	for _, name := range []string{personalDataCollection, skillsCollection, recruiterDataCollection} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique,
		})
		if err != nil {
			return err
		}
	}

	for _, name := range []string{educationsCollection, employmentsCollection} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}},
		})
		if err != nil {
			return err
		}
	}

	_, err = db.Collection(jobsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postedBy", Value: 1}},
	})
	return err
}

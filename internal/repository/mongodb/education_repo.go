package mongodb

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type educationRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewEducationRepository(client *mongo.Client, db *mongo.Database) domain.EducationRepository {
	return &educationRepo{client: client, db: db}
}

func (r *educationRepo) col() *mongo.Collection {
	return r.db.Collection(educationsCollection)
}

func (r *educationRepo) Create(ctx context.Context, edu *domain.Education) error {
	edu.ID = primitive.NewObjectID()
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		res, err := r.db.Collection(usersCollection).UpdateOne(sc,
			bson.M{"_id": edu.UserID},
			bson.M{"$push": bson.M{"educations": edu.ID}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrNotFound
		}
		_, err = r.col().InsertOne(sc, edu)
		return err
	})
}

func (r *educationRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Education, error) {
	cursor, err := r.col().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.Education
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *educationRepo) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Education, error) {
	var edu domain.Education
	if err := r.col().FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&edu); err != nil {
		return nil, mapFindErr(err)
	}
	return &edu, nil
}

func (r *educationRepo) Update(ctx context.Context, edu *domain.Education) error {
	res, err := r.col().ReplaceOne(ctx, bson.M{"_id": edu.ID, "userId": edu.UserID}, edu)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *educationRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		res, err := r.col().DeleteOne(sc, bson.M{"_id": id, "userId": userID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return domain.ErrNotFound
		}
		_, err = r.db.Collection(usersCollection).UpdateOne(sc,
			bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"educations": id}},
		)
		return err
	})
}

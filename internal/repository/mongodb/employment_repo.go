package mongodb

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type employmentRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewEmploymentRepository(client *mongo.Client, db *mongo.Database) domain.EmploymentRepository {
	return &employmentRepo{client: client, db: db}
}

func (r *employmentRepo) col() *mongo.Collection {
	return r.db.Collection(employmentsCollection)
}

func (r *employmentRepo) Create(ctx context.Context, emp *domain.Employment) error {
	emp.ID = primitive.NewObjectID()
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		res, err := r.db.Collection(usersCollection).UpdateOne(sc,
			bson.M{"_id": emp.UserID},
			bson.M{"$push": bson.M{"employments": emp.ID}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrNotFound
		}
		_, err = r.col().InsertOne(sc, emp)
		return err
	})
}

func (r *employmentRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Employment, error) {
	cursor, err := r.col().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.Employment
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *employmentRepo) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Employment, error) {
	var emp domain.Employment
	if err := r.col().FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&emp); err != nil {
		return nil, mapFindErr(err)
	}
	return &emp, nil
}

func (r *employmentRepo) Update(ctx context.Context, emp *domain.Employment) error {
	res, err := r.col().ReplaceOne(ctx, bson.M{"_id": emp.ID, "userId": emp.UserID}, emp)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *employmentRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
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
			bson.M{"$pull": bson.M{"employments": id}},
		)
		return err
	})
}

package mongodb

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// createOnePerUser claims the parent reference slot and inserts the child as
// one transaction. The conditional update on the missing reference field is
// what enforces the one-instance rule under concurrency; the unique userId
// index is a backstop.
func createOnePerUser(ctx context.Context, client *mongo.Client, db *mongo.Database,
	collection, refField string, userID, childID primitive.ObjectID, doc interface{}) error {

	return withTransaction(ctx, client, func(sc mongo.SessionContext) error {
		res, err := db.Collection(usersCollection).UpdateOne(sc,
			bson.M{"_id": userID, refField: bson.M{"$exists": false}},
			bson.M{"$set": bson.M{refField: childID}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			// Distinguish a missing user from an already-claimed slot.
			count, err := db.Collection(usersCollection).CountDocuments(sc, bson.M{"_id": userID})
			if err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrDuplicate
		}

		_, err = db.Collection(collection).InsertOne(sc, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domain.ErrDuplicate
			}
			return err
		}
		return nil
	})
}

type personalDataRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewPersonalDataRepository(client *mongo.Client, db *mongo.Database) domain.PersonalDataRepository {
	return &personalDataRepo{client: client, db: db}
}

func (r *personalDataRepo) Create(ctx context.Context, data *domain.PersonalData) error {
	data.ID = primitive.NewObjectID()
	return createOnePerUser(ctx, r.client, r.db, personalDataCollection, "personalData", data.UserID, data.ID, data)
}

func (r *personalDataRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.PersonalData, error) {
	var data domain.PersonalData
	err := r.db.Collection(personalDataCollection).FindOne(ctx, bson.M{"userId": userID}).Decode(&data)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &data, nil
}

func (r *personalDataRepo) Update(ctx context.Context, data *domain.PersonalData) error {
	res, err := r.db.Collection(personalDataCollection).ReplaceOne(ctx,
		bson.M{"_id": data.ID, "userId": data.UserID}, data)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type skillsRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewSkillsRepository(client *mongo.Client, db *mongo.Database) domain.SkillsRepository {
	return &skillsRepo{client: client, db: db}
}

func (r *skillsRepo) Create(ctx context.Context, set *domain.SkillSet) error {
	set.ID = primitive.NewObjectID()
	return createOnePerUser(ctx, r.client, r.db, skillsCollection, "skills", set.UserID, set.ID, set)
}

func (r *skillsRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.SkillSet, error) {
	var set domain.SkillSet
	err := r.db.Collection(skillsCollection).FindOne(ctx, bson.M{"userId": userID}).Decode(&set)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &set, nil
}

func (r *skillsRepo) Update(ctx context.Context, set *domain.SkillSet) error {
	res, err := r.db.Collection(skillsCollection).ReplaceOne(ctx,
		bson.M{"_id": set.ID, "userId": set.UserID}, set)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type recruiterDataRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewRecruiterDataRepository(client *mongo.Client, db *mongo.Database) domain.RecruiterDataRepository {
	return &recruiterDataRepo{client: client, db: db}
}

func (r *recruiterDataRepo) Create(ctx context.Context, data *domain.RecruiterData) error {
	data.ID = primitive.NewObjectID()
	return createOnePerUser(ctx, r.client, r.db, recruiterDataCollection, "recruiterData", data.UserID, data.ID, data)
}

func (r *recruiterDataRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.RecruiterData, error) {
	var data domain.RecruiterData
	err := r.db.Collection(recruiterDataCollection).FindOne(ctx, bson.M{"userId": userID}).Decode(&data)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &data, nil
}

func (r *recruiterDataRepo) Update(ctx context.Context, data *domain.RecruiterData) error {
	res, err := r.db.Collection(recruiterDataCollection).ReplaceOne(ctx,
		bson.M{"_id": data.ID, "userId": data.UserID}, data)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

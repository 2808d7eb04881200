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

type userRepo struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) col() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"username": identifier},
	}})
}

func (r *userRepo) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"verificationToken": token})
}

func (r *userRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"resetToken": token})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.col().FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapFindErr(err)
	}
	return &user, nil
}

func (r *userRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	count, err := r.col().CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) MarkEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"isEmailVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"verificationToken": ""},
	})
}

func (r *userRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{"resetToken": token, "resetTokenExpiry": expiry, "updatedAt": time.Now()},
	})
}

func (r *userRepo) ReplacePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now()},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
	})
}

func (r *userRepo) SetProfilePictureURL(ctx context.Context, id primitive.ObjectID, url string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"profilePictureUrl": url, "updatedAt": time.Now()}})
}

func (r *userRepo) SetResumeURL(ctx context.Context, id primitive.ObjectID, url string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"resumeUrl": url, "updatedAt": time.Now()}})
}

func (r *userRepo) SetJobPreferences(ctx context.Context, id primitive.ObjectID, preferences []string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"jobPreferences": preferences, "updatedAt": time.Now()}})
}

func (r *userRepo) PushJobPreference(ctx context.Context, id primitive.ObjectID, preference string) error {
	return r.updateByID(ctx, id, bson.M{
		"$push": bson.M{"jobPreferences": preference},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

func (r *userRepo) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) FindByJobPreference(ctx context.Context, title string) ([]domain.User, error) {
	// Exact, case-sensitive membership in the preference array.
	cursor, err := r.col().Find(ctx, bson.M{"jobPreferences": title})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) FindByAppliedJob(ctx context.Context, jobID primitive.ObjectID) ([]domain.PublicProfile, error) {
	return r.findProfiles(ctx, bson.M{"appliedJobs": jobID})
}

func (r *userRepo) SearchJobSeekers(ctx context.Context, text string) ([]domain.PublicProfile, error) {
	pattern := primitive.Regex{Pattern: regexEscape(text), Options: "i"}

	// Skill matches live in the skills collection; collect the owning users
	// first, then union with username matches.
	cursor, err := r.db.Collection(skillsCollection).Find(ctx, bson.M{"skills": pattern})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.SkillSet
	if err := cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	userIDs := make([]primitive.ObjectID, 0, len(sets))
	for _, s := range sets {
		userIDs = append(userIDs, s.UserID)
	}

	return r.findProfiles(ctx, bson.M{
		"role": domain.RoleJobSeeker,
		"$or": bson.A{
			bson.M{"username": pattern},
			bson.M{"_id": bson.M{"$in": userIDs}},
		},
	})
}

func (r *userRepo) findProfiles(ctx context.Context, filter bson.M) ([]domain.PublicProfile, error) {
	projection := bson.M{"username": 1, "email": 1, "profilePictureUrl": 1, "resumeUrl": 1}
	cursor, err := r.col().Find(ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []domain.PublicProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

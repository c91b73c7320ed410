package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
)

type mongoUsers struct {
	col *mongo.Collection
	log zerolog.Logger
}

func (s *mongoUsers) Insert(ctx context.Context, user *models.User) (ID, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return ID{}, persistErr(err)
	}
	return FromObjectID(res.InsertedID.(primitive.ObjectID)), nil
}

func (s *mongoUsers) FindByID(ctx context.Context, id ID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, persistErr(err)
	}
	return &user, nil
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, persistErr(err)
	}
	return &user, nil
}

func (s *mongoUsers) Exists(ctx context.Context, id ID) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id.ObjectID()})
	if err != nil {
		return false, persistErr(err)
	}
	return n > 0, nil
}

// buildUserQuery turns a listing filter into the Mongo query document.
func buildUserQuery(f UserListFilter) bson.M {
	query := bson.M{}
	if f.Search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": f.Search, "$options": "i"}},
			{"surname": bson.M{"$regex": f.Search, "$options": "i"}},
			{"email": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.Role != "" {
		query["role"] = f.Role
	}
	if f.IsActive != nil {
		query["is_active"] = *f.IsActive
	}
	return query
}

func (s *mongoUsers) List(ctx context.Context, f UserListFilter) ([]models.User, int64, error) {
	query := buildUserQuery(f)

	skip := (f.Page - 1) * f.Limit
	opts := options.Find().
		SetSort(bson.D{{Key: f.SortBy, Value: f.SortOrder}}).
		SetSkip(skip).
		SetLimit(f.Limit)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, persistErr(err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, persistErr(err)
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, persistErr(err)
	}
	return users, total, nil
}

func (s *mongoUsers) UpdateProfile(ctx context.Context, id ID, patch models.ProfilePatch) error {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Surname != nil {
		set["surname"] = *patch.Surname
	}
	if patch.Birthday != nil {
		set["birthday"] = *patch.Birthday
	}
	if patch.Sex != nil {
		set["sex"] = *patch.Sex
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.ProfilePicture != nil {
		set["profile_picture"] = *patch.ProfilePicture
	}

	res, err := s.col.UpdateByID(ctx, id.ObjectID(), bson.M{"$set": set})
	if err != nil {
		return persistErr(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *mongoUsers) SetActive(ctx context.Context, id ID, active bool) error {
	res, err := s.col.UpdateByID(ctx, id.ObjectID(), bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return persistErr(err)
	}
	if res.ModifiedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *mongoUsers) AddFriend(ctx context.Context, userID, friendID ID) error {
	return s.addToSet(ctx, userID, "friends", friendID.ObjectID())
}

func (s *mongoUsers) HasFriend(ctx context.Context, userID, friendID ID) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{
		"_id":     userID.ObjectID(),
		"friends": friendID.ObjectID(),
	})
	if err != nil {
		return false, persistErr(err)
	}
	return n > 0, nil
}

func (s *mongoUsers) AddFavorite(ctx context.Context, userID, eventID ID) error {
	return s.addToSet(ctx, userID, "favorite_events", eventID.ObjectID())
}

func (s *mongoUsers) AddAchievement(ctx context.Context, userID, achievementID ID) (bool, error) {
	res, err := s.col.UpdateByID(ctx, userID.ObjectID(),
		bson.M{"$addToSet": bson.M{"achievements": achievementID.ObjectID()}})
	if err != nil {
		return false, persistErr(err)
	}
	return res.ModifiedCount > 0, nil
}

func (s *mongoUsers) IncEventsOrganized(ctx context.Context, id ID) error {
	return s.inc(ctx, id, "events_organized")
}

func (s *mongoUsers) IncEventsAttended(ctx context.Context, id ID) error {
	return s.inc(ctx, id, "events_attended")
}

func (s *mongoUsers) addToSet(ctx context.Context, id ID, field string, value primitive.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, id.ObjectID(), bson.M{"$addToSet": bson.M{field: value}})
	return persistErr(err)
}

func (s *mongoUsers) inc(ctx context.Context, id ID, field string) error {
	_, err := s.col.UpdateByID(ctx, id.ObjectID(), bson.M{"$inc": bson.M{field: 1}})
	return persistErr(err)
}

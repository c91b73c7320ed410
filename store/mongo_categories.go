package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
)

type mongoCategories struct {
	col *mongo.Collection
}

func (s *mongoCategories) Insert(ctx context.Context, category *models.Category) (ID, error) {
	res, err := s.col.InsertOne(ctx, category)
	if err != nil {
		return ID{}, persistErr(err)
	}
	return FromObjectID(res.InsertedID.(primitive.ObjectID)), nil
}

func (s *mongoCategories) FindByID(ctx context.Context, id ID) (*models.Category, error) {
	var category models.Category
	err := s.col.FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, persistErr(err)
	}
	return &category, nil
}

func (s *mongoCategories) All(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, persistErr(err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, persistErr(err)
	}
	return categories, nil
}

func (s *mongoCategories) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, persistErr(err)
	}
	return n, nil
}

type mongoAchievements struct {
	col *mongo.Collection
}

func (s *mongoAchievements) Insert(ctx context.Context, achievement *models.Achievement) (ID, error) {
	res, err := s.col.InsertOne(ctx, achievement)
	if err != nil {
		return ID{}, persistErr(err)
	}
	return FromObjectID(res.InsertedID.(primitive.ObjectID)), nil
}

func (s *mongoAchievements) Exists(ctx context.Context, id ID) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id.ObjectID()})
	if err != nil {
		return false, persistErr(err)
	}
	return n > 0, nil
}

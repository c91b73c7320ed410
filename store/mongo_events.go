package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
)

type mongoEvents struct {
	col *mongo.Collection
	log zerolog.Logger
}

func (s *mongoEvents) Insert(ctx context.Context, event *models.Event) (ID, error) {
	res, err := s.col.InsertOne(ctx, event)
	if err != nil {
		return ID{}, persistErr(err)
	}
	return FromObjectID(res.InsertedID.(primitive.ObjectID)), nil
}

func (s *mongoEvents) FindByID(ctx context.Context, id ID) (*models.Event, error) {
	var event models.Event
	err := s.col.FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, persistErr(err)
	}
	return &event, nil
}

func (s *mongoEvents) Exists(ctx context.Context, id ID) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id.ObjectID()})
	if err != nil {
		return false, persistErr(err)
	}
	return n > 0, nil
}

// buildEventQuery turns an event filter into the Mongo query document. The
// date range is half-open: inclusive of From, exclusive of To.
func buildEventQuery(f EventFilter) bson.M {
	query := bson.M{}
	if f.From != nil || f.To != nil {
		dateRange := bson.M{}
		if f.From != nil {
			dateRange["$gte"] = *f.From
		}
		if f.To != nil {
			dateRange["$lt"] = *f.To
		}
		query["date"] = dateRange
	}
	if len(f.IDs) > 0 {
		oids := make([]primitive.ObjectID, 0, len(f.IDs))
		for _, id := range f.IDs {
			oids = append(oids, id.ObjectID())
		}
		query["_id"] = bson.M{"$in": oids}
	}
	if f.CategoryID != nil {
		query["category_id"] = f.CategoryID.ObjectID()
	}
	if f.OrganizerID != nil {
		query["organizer_id"] = f.OrganizerID.ObjectID()
	}
	return query
}

func (s *mongoEvents) Find(ctx context.Context, f EventFilter) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := s.col.Find(ctx, buildEventQuery(f), opts)
	if err != nil {
		return nil, persistErr(err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, persistErr(err)
	}
	return events, nil
}

func (s *mongoEvents) AddParticipant(ctx context.Context, eventID, userID ID) error {
	_, err := s.col.UpdateByID(ctx, eventID.ObjectID(),
		bson.M{"$addToSet": bson.M{"participants": userID.ObjectID()}})
	return persistErr(err)
}

func (s *mongoEvents) HasParticipant(ctx context.Context, eventID, userID ID) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{
		"_id":          eventID.ObjectID(),
		"participants": userID.ObjectID(),
	})
	if err != nil {
		return false, persistErr(err)
	}
	return n > 0, nil
}

func (s *mongoEvents) SetFirstPhoto(ctx context.Context, eventID ID, url string) error {
	res, err := s.col.UpdateByID(ctx, eventID.ObjectID(),
		bson.M{"$set": bson.M{"photos.0": url}})
	if err != nil {
		return persistErr(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *mongoEvents) TransitionStatus(ctx context.Context, from, to models.EventStatus, notAfter time.Time) (int64, error) {
	res, err := s.col.UpdateMany(ctx,
		bson.M{"status": from, "date": bson.M{"$lte": notAfter}},
		bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return 0, persistErr(err)
	}
	return res.ModifiedCount, nil
}

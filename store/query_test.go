package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DvizhHSE/Dvizh-backend/models"
)

func TestBuildUserQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, buildUserQuery(UserListFilter{}))

	active := true
	query := buildUserQuery(UserListFilter{
		Search:   "petrov",
		Role:     models.RoleOrganizer,
		IsActive: &active,
	})

	assert.Equal(t, models.RoleOrganizer, query["role"])
	assert.Equal(t, true, query["is_active"])
	or, ok := query["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 3)
	assert.Equal(t, bson.M{"$regex": "petrov", "$options": "i"}, or[0]["name"])
	assert.Equal(t, bson.M{"$regex": "petrov", "$options": "i"}, or[1]["surname"])
	assert.Equal(t, bson.M{"$regex": "petrov", "$options": "i"}, or[2]["email"])
}

func TestBuildEventQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, buildEventQuery(EventFilter{}))

	from := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	query := buildEventQuery(EventFilter{From: &from, To: &to})
	// half-open: inclusive start, exclusive end
	assert.Equal(t, bson.M{"$gte": from, "$lt": to}, query["date"])

	ids := []ID{NewID(), NewID()}
	category := NewID()
	query = buildEventQuery(EventFilter{IDs: ids, CategoryID: &category})
	assert.Equal(t, category.ObjectID(), query["category_id"])
	in, ok := query["_id"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, []primitive.ObjectID{ids[0].ObjectID(), ids[1].ObjectID()}, in["$in"])
}

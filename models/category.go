package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CategoryNone is the sentinel display value for events whose category
// reference is missing or dangling.
const CategoryNone = "none"

type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

type Achievement struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Picture string             `bson:"picture,omitempty" json:"picture,omitempty"`
}

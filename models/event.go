package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventStatus string

const (
	StatusPlanned   EventStatus = "planned"
	StatusActive    EventStatus = "active"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Event is the events collection document. Creation is the only operation
// that sets status (always planned); advancement happens exclusively through
// the explicit status transition of the event service.
type Event struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Date         time.Time            `bson:"date" json:"date"`
	Location     string               `bson:"location" json:"location"`
	CategoryID   primitive.ObjectID   `bson:"category_id,omitempty" json:"category_id,omitempty"`
	OrganizerID  primitive.ObjectID   `bson:"organizer_id" json:"organizer_id"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	Status       EventStatus          `bson:"status" json:"status"`
	Photos       []string             `bson:"photos" json:"photos"`
	Description  string               `bson:"description,omitempty" json:"description,omitempty"`
	AgeLimit     int                  `bson:"age_limit,omitempty" json:"age_limit,omitempty"`
	ForRoles     []string             `bson:"for_roles,omitempty" json:"for_roles,omitempty"`
}

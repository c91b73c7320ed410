package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// User is the users collection document. Friends, favorite_events and
// achievements are sets maintained with $addToSet; the two counters are
// incremented by specific actions only and never recomputed.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Surname        string               `bson:"surname" json:"surname"`
	Birthday       time.Time            `bson:"birthday,omitempty" json:"birthday,omitempty"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"` // hashed; never serialized
	Sex            string               `bson:"sex,omitempty" json:"sex,omitempty"`
	Role           Role                 `bson:"role" json:"role"`
	IsActive       bool                 `bson:"is_active" json:"is_active"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfilePicture string               `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	FavoriteEvents []primitive.ObjectID `bson:"favorite_events" json:"-"`
	Friends        []primitive.ObjectID `bson:"friends" json:"-"`
	Achievements   []primitive.ObjectID `bson:"achievements" json:"-"`

	EventsAttended  int `bson:"events_attended" json:"events_attended"`
	EventsOrganized int `bson:"events_organized" json:"events_organized"`
}

// ProfilePatch is the allow-listed set of fields a profile update may touch.
// Nil pointers are left untouched in the stored document.
type ProfilePatch struct {
	Name           *string
	Surname        *string
	Birthday       *time.Time
	Sex            *string
	Phone          *string
	ProfilePicture *string
}

// Empty reports whether the patch would change nothing.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Surname == nil && p.Birthday == nil &&
		p.Sex == nil && p.Phone == nil && p.ProfilePicture == nil
}

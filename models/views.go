package models

import "time"

// EventView is the client-facing shape of an event: ids rendered as hex
// strings, category resolved to its display name (or CategoryNone), organizer
// resolved to a "Name Surname, email[, phone]" display string.
type EventView struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Date         time.Time   `json:"date"`
	Location     string      `json:"location"`
	Category     string      `json:"category"`
	Organizer    string      `json:"organizer"`
	Participants []string    `json:"participants"`
	Status       EventStatus `json:"status"`
	Photos       []string    `json:"photos"`
	Description  string      `json:"description"`
	AgeLimit     int         `json:"age_limit"`
	ForRoles     []string    `json:"for_roles"`
}

// UserProfile is the full user view with every id field stringified.
type UserProfile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	Birthday       time.Time `json:"birthday,omitempty"`
	Email          string    `json:"email"`
	Sex            string    `json:"sex,omitempty"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"is_active"`
	Phone          string    `json:"phone,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	FavoriteEvents []string  `json:"favorite_events"`
	Friends        []string  `json:"friends"`
	Achievements   []string  `json:"achievements"`

	EventsAttended  int `json:"events_attended"`
	EventsOrganized int `json:"events_organized"`
}

// UserPage is one page of the admin user listing plus the total match count
// for client-side pagination.
type UserPage struct {
	Users []UserProfile `json:"users"`
	Total int64         `json:"total"`
	Page  int64         `json:"page"`
	Limit int64         `json:"limit"`
}

// Homepage aggregates the event queries shown on a user's home screen.
type Homepage struct {
	Today     []EventView `json:"today"`
	ThisWeek  []EventView `json:"this_week"`
	Favorites []EventView `json:"favorite_events"`
}

// Package store defines the key-document interface the services consume and
// its MongoDB implementation. The services never touch a mongo handle
// directly; everything goes through these per-collection interfaces, so the
// multi-document sequences of the relationship engine stay behind one seam.
package store

import (
	"context"
	"time"

	"github.com/DvizhHSE/Dvizh-backend/models"
)

// UserListFilter drives the admin user listing.
type UserListFilter struct {
	// Search is a case-insensitive substring matched against name, surname
	// and email.
	Search string
	// Role filters by role when non-empty.
	Role models.Role
	// IsActive filters by the active flag when non-nil.
	IsActive *bool

	SortBy    string
	SortOrder int // 1 ascending, -1 descending
	Page      int64
	Limit     int64
}

// EventFilter restricts an event listing. From/To form a half-open interval
// [From, To) over the event date.
type EventFilter struct {
	From        *time.Time
	To          *time.Time
	IDs         []ID
	CategoryID  *ID
	OrganizerID *ID
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) (ID, error)
	FindByID(ctx context.Context, id ID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, id ID) (bool, error)
	List(ctx context.Context, f UserListFilter) ([]models.User, int64, error)

	// UpdateProfile applies an allow-listed patch; apperr.ErrNotFound when no
	// document matched.
	UpdateProfile(ctx context.Context, id ID, patch models.ProfilePatch) error
	// SetActive toggles is_active; apperr.ErrNotFound when nothing was
	// modified (matches the original modified-count semantics).
	SetActive(ctx context.Context, id ID, active bool) error

	// Set-membership inserts ($addToSet), idempotent per call.
	AddFriend(ctx context.Context, userID, friendID ID) error
	HasFriend(ctx context.Context, userID, friendID ID) (bool, error)
	AddFavorite(ctx context.Context, userID, eventID ID) error
	// AddAchievement reports whether the set actually grew.
	AddAchievement(ctx context.Context, userID, achievementID ID) (bool, error)

	IncEventsOrganized(ctx context.Context, id ID) error
	IncEventsAttended(ctx context.Context, id ID) error
}

type EventStore interface {
	Insert(ctx context.Context, event *models.Event) (ID, error)
	FindByID(ctx context.Context, id ID) (*models.Event, error)
	Exists(ctx context.Context, id ID) (bool, error)
	Find(ctx context.Context, f EventFilter) ([]models.Event, error)

	AddParticipant(ctx context.Context, eventID, userID ID) error
	HasParticipant(ctx context.Context, eventID, userID ID) (bool, error)

	// SetFirstPhoto replaces the first slot of the photos sequence.
	SetFirstPhoto(ctx context.Context, eventID ID, url string) error

	// TransitionStatus moves every event in status from with date <= notAfter
	// into status to, returning how many changed.
	TransitionStatus(ctx context.Context, from, to models.EventStatus, notAfter time.Time) (int64, error)
}

type CategoryStore interface {
	Insert(ctx context.Context, category *models.Category) (ID, error)
	FindByID(ctx context.Context, id ID) (*models.Category, error)
	All(ctx context.Context) ([]models.Category, error)
	Count(ctx context.Context) (int64, error)
}

type AchievementStore interface {
	Insert(ctx context.Context, achievement *models.Achievement) (ID, error)
	Exists(ctx context.Context, id ID) (bool, error)
}

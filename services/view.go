package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

// resolveEvent turns a stored event into its client-facing view: ids become
// hex strings, the category reference resolves to a name (sentinel when
// dangling, never an error) and the organizer resolves to a display string.
// A dangling organizer fails the resolution; list operations catch that and
// skip the record.
func (s *EventService) resolveEvent(ctx context.Context, event *models.Event) (*models.EventView, error) {
	category := models.CategoryNone
	if !event.CategoryID.IsZero() {
		c, err := s.categories.FindByID(ctx, store.FromObjectID(event.CategoryID))
		switch {
		case err == nil:
			category = c.Name
		case errors.Is(err, apperr.ErrNotFound):
			// dangling category reference; keep the sentinel
		default:
			return nil, err
		}
	}

	organizer, err := s.users.FindByID(ctx, store.FromObjectID(event.OrganizerID))
	if err != nil {
		return nil, fmt.Errorf("resolve organizer %s: %w", event.OrganizerID.Hex(), err)
	}

	view := &models.EventView{
		ID:           event.ID.Hex(),
		Name:         event.Name,
		Date:         event.Date,
		Location:     event.Location,
		Category:     category,
		Organizer:    organizerDisplay(organizer),
		Participants: hexAll(event.Participants),
		Status:       event.Status,
		Photos:       event.Photos,
		Description:  event.Description,
		AgeLimit:     event.AgeLimit,
		ForRoles:     event.ForRoles,
	}
	if view.Photos == nil {
		view.Photos = []string{}
	}
	if view.ForRoles == nil {
		view.ForRoles = []string{}
	}
	return view, nil
}

// organizerDisplay formats "Name Surname, email" plus the phone when set.
func organizerDisplay(u *models.User) string {
	display := fmt.Sprintf("%s %s, %s", u.Name, u.Surname, u.Email)
	if u.Phone != "" {
		display += ", " + u.Phone
	}
	return display
}

func profileOf(u *models.User) *models.UserProfile {
	return &models.UserProfile{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Surname:        u.Surname,
		Birthday:       u.Birthday,
		Email:          u.Email,
		Sex:            u.Sex,
		Role:           u.Role,
		IsActive:       u.IsActive,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		FavoriteEvents: hexAll(u.FavoriteEvents),
		Friends:        hexAll(u.Friends),
		Achievements:   hexAll(u.Achievements),

		EventsAttended:  u.EventsAttended,
		EventsOrganized: u.EventsOrganized,
	}
}

func hexAll(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

type EventService struct {
	events     store.EventStore
	users      store.UserStore
	categories store.CategoryStore
	log        zerolog.Logger
	now        func() time.Time
}

func NewEventService(
	events store.EventStore,
	users store.UserStore,
	categories store.CategoryStore,
	log zerolog.Logger,
) *EventService {
	return &EventService{
		events:     events,
		users:      users,
		categories: categories,
		log:        log,
		now:        time.Now,
	}
}

type CreateEventInput struct {
	Name        string
	Date        time.Time
	Location    string
	CategoryID  string
	Description string
	Photos      []string
	AgeLimit    int
	ForRoles    []string
}

// CreateEvent persists a planned event owned by the organizer and bumps the
// organizer's events_organized counter. The counter increment is a side
// effect of creation, not derived state; the insert and the increment are not
// atomic.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput, organizerID string) (*models.EventView, error) {
	oid, err := store.ParseID(organizerID)
	if err != nil {
		return nil, err
	}
	ok, err := s.users.Exists(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: organizer %s", apperr.ErrNotFound, oid.Hex())
	}

	event := &models.Event{
		Name:         in.Name,
		Date:         in.Date,
		Location:     in.Location,
		OrganizerID:  oid.ObjectID(),
		Participants: []primitive.ObjectID{},
		Status:       models.StatusPlanned,
		Photos:       in.Photos,
		Description:  in.Description,
		AgeLimit:     in.AgeLimit,
		ForRoles:     in.ForRoles,
	}
	if event.Photos == nil {
		event.Photos = []string{}
	}
	if in.CategoryID != "" {
		cid, err := store.ParseID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		event.CategoryID = cid.ObjectID()
	}

	id, err := s.events.Insert(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCreation, err)
	}
	event.ID = id.ObjectID()

	if err := s.users.IncEventsOrganized(ctx, oid); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("event_id", id.Hex()).
		Str("organizer_id", oid.Hex()).
		Msg("event created")

	return s.resolveEvent(ctx, event)
}

// GetEvent returns the resolved view of a single event.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*models.EventView, error) {
	id, err := store.ParseID(eventID)
	if err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveEvent(ctx, event)
}

// UpdateEventPicture replaces the first slot of the photos sequence.
func (s *EventService) UpdateEventPicture(ctx context.Context, eventID, url string) error {
	id, err := store.ParseID(eventID)
	if err != nil {
		return err
	}
	return s.events.SetFirstPhoto(ctx, id, url)
}

// ListEvents resolves every event matching the filter. An event whose
// organizer reference dangles is logged and skipped; one corrupt record never
// fails the listing.
func (s *EventService) ListEvents(ctx context.Context, f store.EventFilter) ([]models.EventView, error) {
	events, err := s.events.Find(ctx, f)
	if err != nil {
		return nil, err
	}

	views := []models.EventView{}
	for i := range events {
		view, err := s.resolveEvent(ctx, &events[i])
		if err != nil {
			s.log.Warn().Err(err).
				Str("event_id", events[i].ID.Hex()).
				Msg("skipping unresolvable event")
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}

// ListToday lists events dated within [local midnight, next midnight).
func (s *EventService) ListToday(ctx context.Context) ([]models.EventView, error) {
	from, to := dayBounds(s.now())
	return s.ListEvents(ctx, store.EventFilter{From: &from, To: &to})
}

// ListThisWeek lists events dated within [Monday 00:00, next Monday 00:00).
func (s *EventService) ListThisWeek(ctx context.Context) ([]models.EventView, error) {
	from, to := weekBounds(s.now())
	return s.ListEvents(ctx, store.EventFilter{From: &from, To: &to})
}

// Homepage aggregates the event queries backing a user's home screen.
func (s *EventService) Homepage(ctx context.Context, userID string) (*models.Homepage, error) {
	id, err := store.ParseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today, err := s.ListToday(ctx)
	if err != nil {
		return nil, err
	}
	week, err := s.ListThisWeek(ctx)
	if err != nil {
		return nil, err
	}

	favorites := []models.EventView{}
	if len(user.FavoriteEvents) > 0 {
		ids := make([]store.ID, 0, len(user.FavoriteEvents))
		for _, oid := range user.FavoriteEvents {
			ids = append(ids, store.FromObjectID(oid))
		}
		favorites, err = s.ListEvents(ctx, store.EventFilter{IDs: ids})
		if err != nil {
			return nil, err
		}
	}

	return &models.Homepage{
		Today:     today,
		ThisWeek:  week,
		Favorites: favorites,
	}, nil
}

// AdvanceStatuses is the explicit, externally-triggered status transition:
// planned events become active once their date passes, active events become
// completed one day after. Cancelled is terminal and never set here.
func (s *EventService) AdvanceStatuses(ctx context.Context, now time.Time) (int64, error) {
	activated, err := s.events.TransitionStatus(ctx, models.StatusPlanned, models.StatusActive, now)
	if err != nil {
		return 0, err
	}
	completed, err := s.events.TransitionStatus(ctx, models.StatusActive, models.StatusCompleted, now.Add(-24*time.Hour))
	if err != nil {
		return activated, err
	}
	if activated+completed > 0 {
		s.log.Info().
			Int64("activated", activated).
			Int64("completed", completed).
			Msg("event statuses advanced")
	}
	return activated + completed, nil
}

// dayBounds returns the half-open interval covering "today" in now's
// location.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// weekBounds returns the half-open interval from Monday 00:00 of the current
// week to the following Monday 00:00.
func weekBounds(now time.Time) (time.Time, time.Time) {
	today, _ := dayBounds(now)
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started six days earlier
	}
	monday := today.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

type eventFixture struct {
	users      *fakeUsers
	events     *fakeEvents
	categories *fakeCategories
}

func newEventService(t *testing.T) (*EventService, eventFixture) {
	t.Helper()
	f := eventFixture{
		users:      newFakeUsers(),
		events:     newFakeEvents(),
		categories: newFakeCategories(),
	}
	return NewEventService(f.events, f.users, f.categories, zerolog.Nop()), f
}

func TestCreateEvent(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	organizer := f.users.put(&models.User{
		Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com", Phone: "+7 999 000-00-00",
	})
	category := f.categories.put(&models.Category{Name: "Meetup"})

	view, err := svc.CreateEvent(ctx, CreateEventInput{
		Name:       "Go Meetup",
		Date:       time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC),
		Location:   "Moscow",
		CategoryID: category.Hex(),
	}, organizer.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPlanned, view.Status)
	assert.Equal(t, "Meetup", view.Category)
	assert.Equal(t, "Ivan Ivanov, ivan@example.com, +7 999 000-00-00", view.Organizer)
	assert.Empty(t, view.Participants)
	assert.NotEmpty(t, view.ID)

	// counter incremented by exactly 1
	assert.Equal(t, 1, f.users.docs[organizer.ObjectID()].EventsOrganized)

	_, err = svc.CreateEvent(ctx, CreateEventInput{Name: "x", Date: time.Now(), Location: "y"}, store.NewID().Hex())
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.CreateEvent(ctx, CreateEventInput{Name: "x", Date: time.Now(), Location: "y"}, "bogus")
	require.ErrorIs(t, err, apperr.ErrMalformedID)
}

func TestGetEventDanglingCategory(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	organizer := f.users.put(&models.User{Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com"})
	e := f.events.put(&models.Event{
		Name:        "Orphaned",
		Date:        time.Now(),
		OrganizerID: organizer.ObjectID(),
		CategoryID:  store.NewID().ObjectID(), // deleted category
		Status:      models.StatusPlanned,
	})

	view, err := svc.GetEvent(ctx, e.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.CategoryNone, view.Category)
	assert.NotNil(t, view.Photos)
	assert.NotNil(t, view.ForRoles)
}

func TestListEventsSkipsDanglingOrganizer(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	organizer := f.users.put(&models.User{Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com"})
	f.events.put(&models.Event{Name: "Good", Date: time.Now(), OrganizerID: organizer.ObjectID()})
	f.events.put(&models.Event{Name: "Corrupt", Date: time.Now(), OrganizerID: store.NewID().ObjectID()})

	views, err := svc.ListEvents(ctx, store.EventFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Good", views[0].Name)
}

func TestListTodayHalfOpenBoundary(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC) // Saturday afternoon
	svc.now = func() time.Time { return now }

	organizer := f.users.put(&models.User{Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com"})
	f.events.put(&models.Event{Name: "Tonight", Date: time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})
	f.events.put(&models.Event{Name: "AtMidnight", Date: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})
	f.events.put(&models.Event{Name: "ThisMorning", Date: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})

	views, err := svc.ListToday(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	// an event dated exactly at the next midnight is excluded
	for _, v := range views {
		assert.NotEqual(t, "AtMidnight", v.Name)
	}
}

func TestListThisWeek(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	// Wednesday; the week runs Monday 2026-08-24 00:00 .. Monday 2026-08-31 00:00
	svc.now = func() time.Time { return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) }

	organizer := f.users.put(&models.User{Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com"})
	f.events.put(&models.Event{Name: "MondayStart", Date: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})
	f.events.put(&models.Event{Name: "SundayNight", Date: time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})
	f.events.put(&models.Event{Name: "NextMonday", Date: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})
	f.events.put(&models.Event{Name: "LastWeek", Date: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})

	views, err := svc.ListThisWeek(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "MondayStart", views[0].Name)
	assert.Equal(t, "SundayNight", views[1].Name)
}

func TestWeekBoundsSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	from, to := weekBounds(sunday)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), to)
}

func TestUpdateEventPicture(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	e := f.events.put(&models.Event{Name: "x", Photos: []string{"old.jpg", "keep.jpg"}})

	require.NoError(t, svc.UpdateEventPicture(ctx, e.Hex(), "new.jpg"))
	// the first slot is replaced, not appended
	assert.Equal(t, []string{"new.jpg", "keep.jpg"}, f.events.docs[e.ObjectID()].Photos)

	require.ErrorIs(t, svc.UpdateEventPicture(ctx, store.NewID().Hex(), "new.jpg"), apperr.ErrNotFound)
}

func TestHomepage(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) // Wednesday
	svc.now = func() time.Time { return now }

	organizer := f.users.put(&models.User{Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com"})
	today := f.events.put(&models.Event{Name: "Today", Date: now.Add(2 * time.Hour), OrganizerID: organizer.ObjectID()})
	f.events.put(&models.Event{Name: "Friday", Date: time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})
	favorite := f.events.put(&models.Event{Name: "NextMonth", Date: time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC), OrganizerID: organizer.ObjectID()})

	viewer := f.users.put(&models.User{
		Name: "Anna", Surname: "Petrova", Email: "anna@example.com",
	})
	require.NoError(t, f.users.AddFavorite(ctx, viewer, favorite))

	home, err := svc.Homepage(ctx, viewer.Hex())
	require.NoError(t, err)
	require.Len(t, home.Today, 1)
	assert.Equal(t, today.Hex(), home.Today[0].ID)
	assert.Len(t, home.ThisWeek, 2)
	require.Len(t, home.Favorites, 1)
	assert.Equal(t, "NextMonth", home.Favorites[0].Name)

	_, err = svc.Homepage(ctx, store.NewID().Hex())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAdvanceStatuses(t *testing.T) {
	svc, f := newEventService(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	started := f.events.put(&models.Event{Name: "Started", Date: now.Add(-time.Hour), Status: models.StatusPlanned})
	future := f.events.put(&models.Event{Name: "Future", Date: now.Add(time.Hour), Status: models.StatusPlanned})
	over := f.events.put(&models.Event{Name: "Over", Date: now.Add(-48 * time.Hour), Status: models.StatusActive})
	cancelled := f.events.put(&models.Event{Name: "Cancelled", Date: now.Add(-48 * time.Hour), Status: models.StatusCancelled})

	changed, err := svc.AdvanceStatuses(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	assert.Equal(t, models.StatusActive, f.events.docs[started.ObjectID()].Status)
	assert.Equal(t, models.StatusPlanned, f.events.docs[future.ObjectID()].Status)
	assert.Equal(t, models.StatusCompleted, f.events.docs[over.ObjectID()].Status)
	assert.Equal(t, models.StatusCancelled, f.events.docs[cancelled.ObjectID()].Status)
}

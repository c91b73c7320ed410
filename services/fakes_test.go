package services

// In-memory implementations of the store interfaces with the same semantics
// as the Mongo stores: set-insertion is idempotent, lookups fail with
// apperr.ErrNotFound, SetActive reports modified-count.

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

type fakeUsers struct {
	docs map[primitive.ObjectID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{docs: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUsers) put(u *models.User) store.ID {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.docs[u.ID] = u
	return store.FromObjectID(u.ID)
}

func (f *fakeUsers) Insert(_ context.Context, user *models.User) (store.ID, error) {
	return f.put(user), nil
}

func (f *fakeUsers) FindByID(_ context.Context, id store.ID) (*models.User, error) {
	u, ok := f.docs[id.ObjectID()]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.docs {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUsers) Exists(_ context.Context, id store.ID) (bool, error) {
	_, ok := f.docs[id.ObjectID()]
	return ok, nil
}

func (f *fakeUsers) List(_ context.Context, filter store.UserListFilter) ([]models.User, int64, error) {
	matched := []models.User{}
	for _, u := range f.docs {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), needle) &&
				!strings.Contains(strings.ToLower(u.Surname), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].Surname < matched[j].Surname
		if filter.SortOrder == -1 {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id store.ID, patch models.ProfilePatch) error {
	u, ok := f.docs[id.ObjectID()]
	if !ok {
		return apperr.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Surname != nil {
		u.Surname = *patch.Surname
	}
	if patch.Birthday != nil {
		u.Birthday = *patch.Birthday
	}
	if patch.Sex != nil {
		u.Sex = *patch.Sex
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.ProfilePicture != nil {
		u.ProfilePicture = *patch.ProfilePicture
	}
	return nil
}

func (f *fakeUsers) SetActive(_ context.Context, id store.ID, active bool) error {
	u, ok := f.docs[id.ObjectID()]
	if !ok || u.IsActive == active {
		// nothing modified
		return apperr.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUsers) AddFriend(_ context.Context, userID, friendID store.ID) error {
	u, ok := f.docs[userID.ObjectID()]
	if !ok {
		return nil
	}
	u.Friends = addToSet(u.Friends, friendID.ObjectID())
	return nil
}

func (f *fakeUsers) HasFriend(_ context.Context, userID, friendID store.ID) (bool, error) {
	u, ok := f.docs[userID.ObjectID()]
	return ok && contains(u.Friends, friendID.ObjectID()), nil
}

func (f *fakeUsers) AddFavorite(_ context.Context, userID, eventID store.ID) error {
	u, ok := f.docs[userID.ObjectID()]
	if !ok {
		return nil
	}
	u.FavoriteEvents = addToSet(u.FavoriteEvents, eventID.ObjectID())
	return nil
}

func (f *fakeUsers) AddAchievement(_ context.Context, userID, achievementID store.ID) (bool, error) {
	u, ok := f.docs[userID.ObjectID()]
	if !ok {
		return false, nil
	}
	before := len(u.Achievements)
	u.Achievements = addToSet(u.Achievements, achievementID.ObjectID())
	return len(u.Achievements) > before, nil
}

func (f *fakeUsers) IncEventsOrganized(_ context.Context, id store.ID) error {
	if u, ok := f.docs[id.ObjectID()]; ok {
		u.EventsOrganized++
	}
	return nil
}

func (f *fakeUsers) IncEventsAttended(_ context.Context, id store.ID) error {
	if u, ok := f.docs[id.ObjectID()]; ok {
		u.EventsAttended++
	}
	return nil
}

type fakeEvents struct {
	docs map[primitive.ObjectID]*models.Event
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{docs: map[primitive.ObjectID]*models.Event{}}
}

func (f *fakeEvents) put(e *models.Event) store.ID {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	f.docs[e.ID] = e
	return store.FromObjectID(e.ID)
}

func (f *fakeEvents) Insert(_ context.Context, event *models.Event) (store.ID, error) {
	return f.put(event), nil
}

func (f *fakeEvents) FindByID(_ context.Context, id store.ID) (*models.Event, error) {
	e, ok := f.docs[id.ObjectID()]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return e, nil
}

func (f *fakeEvents) Exists(_ context.Context, id store.ID) (bool, error) {
	_, ok := f.docs[id.ObjectID()]
	return ok, nil
}

func (f *fakeEvents) Find(_ context.Context, filter store.EventFilter) ([]models.Event, error) {
	matched := []models.Event{}
	for _, e := range f.docs {
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.Date.Before(*filter.To) {
			continue
		}
		if len(filter.IDs) > 0 {
			found := false
			for _, id := range filter.IDs {
				if id.ObjectID() == e.ID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.CategoryID != nil && e.CategoryID != filter.CategoryID.ObjectID() {
			continue
		}
		if filter.OrganizerID != nil && e.OrganizerID != filter.OrganizerID.ObjectID() {
			continue
		}
		matched = append(matched, *e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	return matched, nil
}

func (f *fakeEvents) AddParticipant(_ context.Context, eventID, userID store.ID) error {
	e, ok := f.docs[eventID.ObjectID()]
	if !ok {
		return nil
	}
	e.Participants = addToSet(e.Participants, userID.ObjectID())
	return nil
}

func (f *fakeEvents) HasParticipant(_ context.Context, eventID, userID store.ID) (bool, error) {
	e, ok := f.docs[eventID.ObjectID()]
	return ok && contains(e.Participants, userID.ObjectID()), nil
}

func (f *fakeEvents) SetFirstPhoto(_ context.Context, eventID store.ID, url string) error {
	e, ok := f.docs[eventID.ObjectID()]
	if !ok {
		return apperr.ErrNotFound
	}
	if len(e.Photos) == 0 {
		e.Photos = []string{url}
	} else {
		e.Photos[0] = url
	}
	return nil
}

func (f *fakeEvents) TransitionStatus(_ context.Context, from, to models.EventStatus, notAfter time.Time) (int64, error) {
	var n int64
	for _, e := range f.docs {
		if e.Status == from && !e.Date.After(notAfter) {
			e.Status = to
			n++
		}
	}
	return n, nil
}

type fakeCategories struct {
	docs map[primitive.ObjectID]*models.Category
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{docs: map[primitive.ObjectID]*models.Category{}}
}

func (f *fakeCategories) put(c *models.Category) store.ID {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.docs[c.ID] = c
	return store.FromObjectID(c.ID)
}

func (f *fakeCategories) Insert(_ context.Context, category *models.Category) (store.ID, error) {
	return f.put(category), nil
}

func (f *fakeCategories) FindByID(_ context.Context, id store.ID) (*models.Category, error) {
	c, ok := f.docs[id.ObjectID()]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategories) All(_ context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.docs {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategories) Count(_ context.Context) (int64, error) {
	return int64(len(f.docs)), nil
}

type fakeAchievements struct {
	docs map[primitive.ObjectID]*models.Achievement
}

func newFakeAchievements() *fakeAchievements {
	return &fakeAchievements{docs: map[primitive.ObjectID]*models.Achievement{}}
}

func (f *fakeAchievements) put(a *models.Achievement) store.ID {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.docs[a.ID] = a
	return store.FromObjectID(a.ID)
}

func (f *fakeAchievements) Insert(_ context.Context, achievement *models.Achievement) (store.ID, error) {
	return f.put(achievement), nil
}

func (f *fakeAchievements) Exists(_ context.Context, id store.ID) (bool, error) {
	_, ok := f.docs[id.ObjectID()]
	return ok, nil
}

// plainHasher keeps credentials readable in tests.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return pw, nil }

func (plainHasher) Compare(hash, pw string) error {
	if hash != pw {
		return apperr.ErrInvalidCredentials
	}
	return nil
}

func addToSet(set []primitive.ObjectID, oid primitive.ObjectID) []primitive.ObjectID {
	if contains(set, oid) {
		return set
	}
	return append(set, oid)
}

func contains(set []primitive.ObjectID, oid primitive.ObjectID) bool {
	for _, member := range set {
		if member == oid {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

// RegistrationPolicy selects the side effect RegisterForEvent applies to the
// user document after joining the participant set. The historical behavior
// added the event to the user's favorites; counting attendance is the
// alternative reading of the same code.
type RegistrationPolicy string

const (
	RegistrationFavors           RegistrationPolicy = "favorites"
	RegistrationCountsAttendance RegistrationPolicy = "attendance"
)

// ParseRegistrationPolicy maps a config string onto a policy, defaulting to
// the historical favorites coupling.
func ParseRegistrationPolicy(s string) RegistrationPolicy {
	if RegistrationPolicy(s) == RegistrationCountsAttendance {
		return RegistrationCountsAttendance
	}
	return RegistrationFavors
}

// RelationshipService owns every mutation that touches more than one
// document: friend edges, favorites, achievements and event registration.
// None of these sequences is transactional; isolating them here means a
// future upgrade to multi-document transactions only touches this type.
type RelationshipService struct {
	users        store.UserStore
	events       store.EventStore
	achievements store.AchievementStore
	policy       RegistrationPolicy
	log          zerolog.Logger
}

func NewRelationshipService(
	users store.UserStore,
	events store.EventStore,
	achievements store.AchievementStore,
	policy RegistrationPolicy,
	log zerolog.Logger,
) *RelationshipService {
	return &RelationshipService{
		users:        users,
		events:       events,
		achievements: achievements,
		policy:       policy,
		log:          log,
	}
}

// AddFriend creates the symmetric friend edge. The two directional writes are
// best-effort: a failure between them leaves an asymmetric edge, which is
// logged and surfaced.
func (s *RelationshipService) AddFriend(ctx context.Context, userID, friendID string) error {
	uid, err := store.ParseID(userID)
	if err != nil {
		return err
	}
	fid, err := store.ParseID(friendID)
	if err != nil {
		return err
	}

	if uid == fid {
		return fmt.Errorf("%w: cannot add yourself as a friend", apperr.ErrInvalidOperation)
	}

	if err := s.requireUser(ctx, uid); err != nil {
		return err
	}
	if err := s.requireUser(ctx, fid); err != nil {
		return err
	}

	friends, err := s.users.HasFriend(ctx, uid, fid)
	if err != nil {
		return err
	}
	if friends {
		return fmt.Errorf("%w: users are already friends", apperr.ErrAlreadyExists)
	}

	if err := s.users.AddFriend(ctx, uid, fid); err != nil {
		return err
	}
	if err := s.users.AddFriend(ctx, fid, uid); err != nil {
		s.log.Error().Err(err).
			Str("user_id", uid.Hex()).
			Str("friend_id", fid.Hex()).
			Msg("friend edge left asymmetric")
		return err
	}
	return nil
}

// AddFavorite inserts the event into the user's favorite set. Idempotent.
func (s *RelationshipService) AddFavorite(ctx context.Context, userID, eventID string) error {
	uid, err := store.ParseID(userID)
	if err != nil {
		return err
	}
	eid, err := store.ParseID(eventID)
	if err != nil {
		return err
	}

	if err := s.requireUser(ctx, uid); err != nil {
		return err
	}
	if err := s.requireEvent(ctx, eid); err != nil {
		return err
	}

	return s.users.AddFavorite(ctx, uid, eid)
}

// GrantAchievement inserts the achievement into the user's set. Granting an
// achievement the user already holds is reported, not failed.
func (s *RelationshipService) GrantAchievement(ctx context.Context, userID, achievementID string) error {
	uid, err := store.ParseID(userID)
	if err != nil {
		return err
	}
	aid, err := store.ParseID(achievementID)
	if err != nil {
		return err
	}

	if err := s.requireUser(ctx, uid); err != nil {
		return err
	}
	ok, err := s.achievements.Exists(ctx, aid)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: achievement %s", apperr.ErrNotFound, aid.Hex())
	}

	added, err := s.users.AddAchievement(ctx, uid, aid)
	if err != nil {
		return err
	}
	if !added {
		s.log.Info().
			Str("user_id", uid.Hex()).
			Str("achievement_id", aid.Hex()).
			Msg("achievement already granted")
	}
	return nil
}

// RegisterForEvent adds the user to the event's participant set and applies
// the configured side effect on the user document.
func (s *RelationshipService) RegisterForEvent(ctx context.Context, eventID, userID string) error {
	eid, err := store.ParseID(eventID)
	if err != nil {
		return err
	}
	uid, err := store.ParseID(userID)
	if err != nil {
		return err
	}

	if err := s.requireEvent(ctx, eid); err != nil {
		return err
	}
	if err := s.requireUser(ctx, uid); err != nil {
		return err
	}

	registered, err := s.events.HasParticipant(ctx, eid, uid)
	if err != nil {
		return err
	}
	if registered {
		return apperr.ErrAlreadyRegistered
	}

	if err := s.events.AddParticipant(ctx, eid, uid); err != nil {
		return err
	}

	switch s.policy {
	case RegistrationCountsAttendance:
		return s.users.IncEventsAttended(ctx, uid)
	default:
		return s.users.AddFavorite(ctx, uid, eid)
	}
}

func (s *RelationshipService) requireUser(ctx context.Context, id store.ID) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, id.Hex())
	}
	return nil
}

func (s *RelationshipService) requireEvent(ctx context.Context, id store.ID) error {
	ok, err := s.events.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: event %s", apperr.ErrNotFound, id.Hex())
	}
	return nil
}

// Package services holds the core of the backend: identity, the
// relationship engine, events, view assembly, categories and achievements.
// Services consume the store interfaces and never touch the driver.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

// birthdayLayout is the wire format for date-only birthday values.
const birthdayLayout = "2006-01-02"

// Hasher is the credential hashing seam. The bcrypt implementation lives in
// utils; tests plug in a plaintext one.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type UserService struct {
	users  store.UserStore
	hasher Hasher
	log    zerolog.Logger
}

func NewUserService(users store.UserStore, hasher Hasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

type RegisterInput struct {
	Name           string
	Surname        string
	Email          string
	Password       string
	Birthday       time.Time
	Sex            string
	Phone          string
	ProfilePicture string
}

// Register creates a user with zero counters, the default role and
// is_active=true. The email pre-check is not atomic with the insert; the
// unique index created at bootstrap closes the race at the database level.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.ErrDuplicateEmail
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCreation, err)
	}

	user := &models.User{
		Name:           in.Name,
		Surname:        in.Surname,
		Birthday:       in.Birthday,
		Email:          in.Email,
		Password:       hash,
		Sex:            in.Sex,
		Role:           models.RoleUser,
		IsActive:       true,
		Phone:          in.Phone,
		ProfilePicture: in.ProfilePicture,
		FavoriteEvents: []primitive.ObjectID{},
		Friends:        []primitive.ObjectID{},
		Achievements:   []primitive.ObjectID{},
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCreation, err)
	}
	user.ID = id.ObjectID()

	s.log.Info().Str("user_id", id.Hex()).Msg("user registered")
	return user, nil
}

// Authenticate checks the credential against the stored hash. Any mismatch,
// including an unknown email, yields the same constant error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.Password, password); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns the full profile with every id stringified.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	id, err := store.ParseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

// ProfileUpdate is the partial profile update accepted from the boundary.
// Birthday arrives as a date-only string and is reparsed here.
type ProfileUpdate struct {
	Name           *string
	Surname        *string
	Birthday       *string
	Sex            *string
	Phone          *string
	ProfilePicture *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) error {
	id, err := store.ParseID(userID)
	if err != nil {
		return err
	}

	patch := models.ProfilePatch{
		Name:           upd.Name,
		Surname:        upd.Surname,
		Sex:            upd.Sex,
		Phone:          upd.Phone,
		ProfilePicture: upd.ProfilePicture,
	}
	if upd.Birthday != nil {
		birthday, err := time.Parse(birthdayLayout, *upd.Birthday)
		if err != nil {
			return fmt.Errorf("%w: birthday must be %s", apperr.ErrInvalidOperation, birthdayLayout)
		}
		patch.Birthday = &birthday
	}
	if patch.Empty() {
		return fmt.Errorf("%w: no fields to update", apperr.ErrInvalidOperation)
	}

	return s.users.UpdateProfile(ctx, id, patch)
}

// SetActive toggles the is_active flag. Users are never hard-deleted, only
// deactivated.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) error {
	id, err := store.ParseID(userID)
	if err != nil {
		return err
	}
	return s.users.SetActive(ctx, id, active)
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ListUsers runs the admin listing with the filter normalized to sane
// pagination and sort defaults.
func (s *UserService) ListUsers(ctx context.Context, f store.UserListFilter) (*models.UserPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	if f.SortBy == "" {
		f.SortBy = "surname"
	}
	if f.SortOrder != 1 && f.SortOrder != -1 {
		f.SortOrder = 1
	}

	users, total, err := s.users.List(ctx, f)
	if err != nil {
		return nil, err
	}

	page := &models.UserPage{
		Users: make([]models.UserProfile, 0, len(users)),
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}
	for i := range users {
		page.Users = append(page.Users, *profileOf(&users[i]))
	}
	return page, nil
}

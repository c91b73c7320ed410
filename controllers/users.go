package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DvizhHSE/Dvizh-backend/services"
)

type UserController struct {
	users  *services.UserService
	rels   *services.RelationshipService
	events *services.EventService
}

func NewUserController(
	users *services.UserService,
	rels *services.RelationshipService,
	events *services.EventService,
) *UserController {
	return &UserController{users: users, rels: rels, events: events}
}

// GetUser returns the full profile with resolved id strings.
func (ct *UserController) GetUser(c *gin.Context) {
	profile, err := ct.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileRequest allows partial profile updates; absent fields stay
// untouched.
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Surname        *string `json:"surname,omitempty"`
	Birthday       *string `json:"birthday,omitempty" binding:"omitempty,dateonly"`
	Sex            *string `json:"sex,omitempty" binding:"omitempty,oneof=male female"`
	Phone          *string `json:"phone,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

func (ct *UserController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ct.users.UpdateProfile(c.Request.Context(), c.Param("id"), services.ProfileUpdate{
		Name:           req.Name,
		Surname:        req.Surname,
		Birthday:       req.Birthday,
		Sex:            req.Sex,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// AddFriend creates the symmetric friend edge between the two query ids.
func (ct *UserController) AddFriend(c *gin.Context) {
	userID := c.Query("user_id")
	friendID := c.Query("friend_id")
	if userID == "" || friendID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and friend_id are required"})
		return
	}

	if err := ct.rels.AddFriend(c.Request.Context(), userID, friendID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friend added"})
}

// AddFavorite marks an event as the user's favorite.
func (ct *UserController) AddFavorite(c *gin.Context) {
	if err := ct.rels.AddFavorite(c.Request.Context(), c.Param("id"), c.Param("event_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite added"})
}

// Homepage aggregates the user's home screen event lists.
func (ct *UserController) Homepage(c *gin.Context) {
	home, err := ct.events.Homepage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

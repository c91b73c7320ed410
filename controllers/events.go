package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DvizhHSE/Dvizh-backend/services"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

type EventController struct {
	events *services.EventService
	rels   *services.RelationshipService
}

func NewEventController(events *services.EventService, rels *services.RelationshipService) *EventController {
	return &EventController{events: events, rels: rels}
}

// CreateEventRequest is the event creation body.
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	CategoryID  string    `json:"category_id"`
	Description string    `json:"description"`
	Photos      []string  `json:"photos"`
	AgeLimit    int       `json:"age_limit" binding:"omitempty,gte=0"`
	ForRoles    []string  `json:"for_roles"`
}

// Create persists an event organized by the path user and returns its
// resolved view.
func (ct *EventController) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := ct.events.CreateEvent(c.Request.Context(), services.CreateEventInput{
		Name:        req.Name,
		Date:        req.Date,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Photos:      req.Photos,
		AgeLimit:    req.AgeLimit,
		ForRoles:    req.ForRoles,
	}, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// List returns resolved events. ?period=today|week narrows the date range;
// ?category_id narrows by category.
func (ct *EventController) List(c *gin.Context) {
	ctx := c.Request.Context()

	switch c.Query("period") {
	case "today":
		views, err := ct.events.ListToday(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
		return
	case "week":
		views, err := ct.events.ListThisWeek(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
		return
	}

	filter := store.EventFilter{}
	if raw := c.Query("category_id"); raw != "" {
		id, err := store.ParseID(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.CategoryID = &id
	}

	views, err := ct.events.ListEvents(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Get returns one resolved event.
func (ct *EventController) Get(c *gin.Context) {
	view, err := ct.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Register adds the query user to the event's participants.
func (ct *EventController) Register(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := ct.rels.RegisterForEvent(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registered"})
}

// UpdatePictureRequest carries the already-uploaded picture URL.
type UpdatePictureRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// UpdatePicture replaces the event's primary photo.
func (ct *EventController) UpdatePicture(c *gin.Context) {
	var req UpdatePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ct.events.UpdateEventPicture(c.Request.Context(), c.Param("id"), req.URL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "picture updated"})
}

package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/services"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

type AdminController struct {
	users        *services.UserService
	rels         *services.RelationshipService
	achievements *services.AchievementService
	events       *services.EventService
}

func NewAdminController(
	users *services.UserService,
	rels *services.RelationshipService,
	achievements *services.AchievementService,
	events *services.EventService,
) *AdminController {
	return &AdminController{users: users, rels: rels, achievements: achievements, events: events}
}

func (ct *AdminController) ActivateUser(c *gin.Context) {
	ct.setActive(c, true)
}

func (ct *AdminController) DeactivateUser(c *gin.Context) {
	ct.setActive(c, false)
}

func (ct *AdminController) setActive(c *gin.Context, active bool) {
	if err := ct.users.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
		respondError(c, err)
		return
	}
	msg := "user deactivated"
	if active {
		msg = "user activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// ListUsers is the paged admin listing with search and filters.
func (ct *AdminController) ListUsers(c *gin.Context) {
	filter := store.UserListFilter{
		Search: c.Query("search"),
		Role:   models.Role(c.Query("role")),
		SortBy: c.Query("sort_by"),
	}
	filter.Page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if order, err := strconv.Atoi(c.DefaultQuery("sort_order", "1")); err == nil {
		filter.SortOrder = order
	}
	if raw := c.Query("is_active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &active
		}
	}

	page, err := ct.users.ListUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ct *AdminController) GrantAchievement(c *gin.Context) {
	err := ct.rels.GrantAchievement(c.Request.Context(), c.Param("id"), c.Param("achievement_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "achievement granted"})
}

type CreateAchievementRequest struct {
	Name    string `json:"name" binding:"required"`
	Picture string `json:"picture" binding:"omitempty,url"`
}

func (ct *AdminController) CreateAchievement(c *gin.Context) {
	var req CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	achievement, err := ct.achievements.CreateAchievement(c.Request.Context(), req.Name, req.Picture)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, achievement)
}

// AdvanceEventStatuses moves due events along planned→active→completed.
// Triggered by the deployment's scheduler rather than an in-process timer.
func (ct *AdminController) AdvanceEventStatuses(c *gin.Context) {
	advanced, err := ct.events.AdvanceStatuses(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advanced": advanced})
}

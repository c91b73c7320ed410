package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DvizhHSE/Dvizh-backend/services"
)

type AuthController struct {
	users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

// RegisterRequest is the registration body.
type RegisterRequest struct {
	Name           string `json:"name" binding:"required"`
	Surname        string `json:"surname" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Birthday       string `json:"birthday" binding:"omitempty,dateonly"`
	Sex            string `json:"sex" binding:"omitempty,oneof=male female"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profile_picture"`
}

// LoginRequest is the login body. Login performs a credential check only; no
// session or token is issued.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user.
func (ct *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.RegisterInput{
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          req.Email,
		Password:       req.Password,
		Sex:            req.Sex,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
	}
	if req.Birthday != "" {
		in.Birthday, _ = time.Parse("2006-01-02", req.Birthday) // validated by the dateonly rule
	}

	user, err := ct.users.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login checks the credentials and returns the user document on success.
func (ct *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ct.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

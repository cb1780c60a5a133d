package handlers

import (
	"net/http"

	"CampusMind/internal/models"
	"CampusMind/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
	Department  string `json:"department"`
}

func (h *Handlers) handleUserSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.Fail(c, "error", gin.H{"error": err.Error()})
		return
	}
	user := &models.User{
		Email:       req.Email,
		Password:    string(hashed),
		DisplayName: req.DisplayName,
		Department:  req.Department,
		Role:        models.RoleStudent,
	}
	if err := h.db.Create(user).Error; err != nil {
		response.Fail(c, "email already registered", nil)
		return
	}
	if err := models.Login(c, user); err != nil {
		response.Fail(c, "error", gin.H{"error": err.Error()})
		return
	}
	response.Success(c, "success", gin.H{"user": user})
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) handleUserSignin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := models.GetUserByEmail(h.db, req.Email)
	if err != nil {
		response.FailWithStatus(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		response.FailWithStatus(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err := models.Login(c, user); err != nil {
		response.Fail(c, "error", gin.H{"error": err.Error()})
		return
	}
	response.Success(c, "success", gin.H{"user": user})
}

func (h *Handlers) handleUserLogout(c *gin.Context) {
	if err := models.Logout(c); err != nil {
		response.Fail(c, "error", gin.H{"error": err.Error()})
		return
	}
	response.Success(c, "success", nil)
}

func (h *Handlers) handleUserInfo(c *gin.Context) {
	response.Success(c, "success", gin.H{"user": models.CurrentUser(c)})
}

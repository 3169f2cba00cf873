package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/models"
	ucAccount "github.com/agendafacil/backend/internal/usecase/account"
)

type AuthHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
}

func NewAuthHandler(register *ucAccount.Register, login *ucAccount.Login) *AuthHandler {
	return &AuthHandler{register: register, login: login}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	session, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse(session))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	session, err := h.login.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session))
}

func sessionResponse(s *ucAccount.Session) gin.H {
	return gin.H{
		"account": accountResponse(s.Account),
		"token":   s.Token,
	}
}

func accountResponse(acc *models.Account) gin.H {
	role := ""
	if acc.Profile != nil {
		role = acc.Profile.Role
	}
	return gin.H{
		"id":         acc.ID,
		"username":   acc.Username,
		"email":      acc.Email,
		"role":       role,
		"created_at": acc.CreatedAt,
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, auditService: auditService}
}

// LoginForm represents the login form
type LoginForm struct {
	Login    string `form:"login" binding:"required,max=255"`
	Password string `form:"password" binding:"required"`
}

// RegisterForm represents the registration form
type RegisterForm struct {
	Username        string `form:"username" binding:"required,max=50"`
	Email           string `form:"email" binding:"required,email,max=255"`
	Password        string `form:"password" binding:"required,min=6,max=128"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
	FullName        string `form:"full_name" binding:"max=100"`
}

func renderLogin(c *gin.Context, status int, form LoginForm, b banner) {
	form.Password = ""
	render(c, status, web.PageLogin, gin.H{
		"Title":   "Login",
		"Form":    form,
		"Success": b.Success,
		"Error":   b.Error,
	})
}

func renderRegister(c *gin.Context, status int, form RegisterForm, b banner) {
	form.Password, form.ConfirmPassword = "", ""
	render(c, status, web.PageRegister, gin.H{
		"Title":   "Register",
		"Form":    form,
		"Success": b.Success,
		"Error":   b.Error,
	})
}

// ShowLogin renders the login form
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	renderLogin(c, http.StatusOK, LoginForm{}, banner{})
}

// Login authenticates the user and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		status, b := errorBanner(c, bindError(err))
		renderLogin(c, status, form, b)
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), form.Login, form.Password)
	if err != nil {
		status, b := errorBanner(c, err)
		renderLogin(c, status, form, b)
		return
	}

	token, expiresAt, err := middleware.GenerateSessionToken(user)
	if err != nil {
		status, b := errorBanner(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		renderLogin(c, status, form, b)
		return
	}
	middleware.SetSessionCookie(c, token, expiresAt)

	h.auditService.Log(c.Request.Context(), user.ID, services.AuditLogin, "user", user.ID, c.ClientIP(), nil)

	c.Redirect(http.StatusSeeOther, "/")
}

// ShowRegister renders the registration form
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	renderRegister(c, http.StatusOK, RegisterForm{}, banner{})
}

// Register creates a new account and sends the user to the login page
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		status, b := errorBanner(c, bindError(err))
		renderRegister(c, status, form, b)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), services.RegisterInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		FullName:        form.FullName,
	})
	if err != nil {
		status, b := errorBanner(c, err)
		renderRegister(c, status, form, b)
		return
	}

	h.auditService.Log(c.Request.Context(), user.ID, services.AuditRegister, "user", user.ID, c.ClientIP(), map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
	})

	renderLogin(c, http.StatusCreated, LoginForm{Login: user.Username}, successBanner("Registration successful! Please log in."))
}

// Logout ends the session
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

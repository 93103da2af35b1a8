package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/flash"
	"github.com/teamflow-app/teamflow/internal/services"
	"github.com/teamflow-app/teamflow/internal/validation"
)

// AuthHandler coordinates the registration and login web flow.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterPage serves GET /register/. An authenticated visitor is logged out
// and sent back here, mirroring the original flow.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if h.logoutIfAuthenticated(c, constants.PathRegister) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": flash.Take(c)})
}

// Register handles POST /register/.
func (h *AuthHandler) Register(c *gin.Context) {
	_, err := h.authService.Register(services.RegisterInput{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrMissingFields):
			redirectWith(c, constants.PathRegister, "Error: Missing fields")
		case errors.Is(err, services.ErrPasswordMismatch):
			redirectWith(c, constants.PathRegister, "Error: Passwords doesn't match")
		case errors.Is(err, services.ErrEmailTaken):
			redirectWith(c, constants.PathRegister, "Email already registered.")
		default:
			logrus.WithError(err).Error("registration failed")
			redirectWith(c, constants.PathRegister, genericErrorMessage)
		}
		return
	}

	c.Redirect(http.StatusFound, constants.PathLogin)
}

// LoginPage serves GET /login/. An authenticated visitor is logged out and
// sent back here.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.logoutIfAuthenticated(c, constants.PathLogin) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": flash.Take(c)})
}

// Login handles POST /login/. Every failure produces the same message so the
// response does not reveal whether the email exists.
func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.authService.Login(services.LoginInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logrus.WithError(err).Error("login failed")
		}
		redirectWith(c, constants.PathLogin, "Invalid username and/or password.")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session")
		redirectWith(c, constants.PathLogin, genericErrorMessage)
		return
	}

	c.Redirect(http.StatusFound, constants.PathHome)
}

// Logout clears the session regardless of prior state and redirects home.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()

	c.Redirect(http.StatusFound, constants.PathHome)
}

func (h *AuthHandler) logoutIfAuthenticated(c *gin.Context, backTo string) bool {
	session := sessions.Default(c)
	if session.Get(constants.ContextKeyUserID) == nil {
		return false
	}
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, backTo)
	return true
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/identity"
)

// AuthHandler proxies session calls to the external identity provider.
type AuthHandler struct {
	Client *identity.Client
}

func (h *AuthHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/auth")
	g.POST("/login", h.login)
	g.POST("/signup", h.signup)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Param credentials body credentialsRequest true "credentials"
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	if h.Client == nil {
		Error(c, http.StatusInternalServerError, "identity unavailable", nil)
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	session, err := h.Client.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == identity.ErrUnauthorized {
			Error(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, session, nil)
}

// @Summary Sign up
// @Tags auth
// @Accept json
// @Param credentials body credentialsRequest true "credentials"
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) signup(c *gin.Context) {
	if h.Client == nil {
		Error(c, http.StatusInternalServerError, "identity unavailable", nil)
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	session, err := h.Client.Signup(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, session, nil)
}

// @Summary Log out
// @Tags auth
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	if h.Client == nil {
		Error(c, http.StatusInternalServerError, "identity unavailable", nil)
		return
	}
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if token == "" {
		Error(c, http.StatusBadRequest, "missing bearer token", nil)
		return
	}
	if err := h.Client.Logout(c.Request.Context(), token); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"logged_out": true}, nil)
}

// @Summary Current user
// @Tags auth
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) me(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return
	}
	Ok(c, user, nil)
}

package handler

import (
	"net/http"

	"agrimart-be/internal/auth"
	"agrimart-be/internal/user"
	"agrimart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "Register", err)
		return
	}

	token, u, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		fail(c, "Register", err)
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": u})
}

func (h *Handler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := decodeStrict(c, &input); err != nil {
		fail(c, "Login", err)
		return
	}

	token, u, err := h.users.Login(c.Request.Context(), input)
	if err != nil {
		fail(c, "Login", err)
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": u})
}

func (h *Handler) Me(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, "Me", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	maxAge := int(auth.DefaultTTL.Seconds())
	if h.tokens != nil {
		maxAge = int(h.tokens.TTL().Seconds())
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", h.secureCookie, true)
}

// currentUser is only called behind RequireAuth.
func currentUser(c *gin.Context) uint {
	id, _ := utils.GetUserIDFromContext(c.Request.Context())
	return id
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

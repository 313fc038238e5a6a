package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fotolab/internal/auth"
	"fotolab/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	sessionTTL   time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler. sessionTTL sets the cookie
// lifetime and should match the session store TTL.
func NewAuthHandler(authService service.AuthService, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user id. Token is the session
// token also set as the session cookie, for clients that send a bearer
// header instead.
type LoginResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Token   string `json:"token"`
}

// Login godoc
// @Summary Login user
// @Description Unknown usernames and wrong passwords produce the same 401 body.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	token, userID, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(h.cookie(token, int(h.sessionTTL.Seconds())))
	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		ID:      userID,
		Token:   token,
	})
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id, _ := auth.IdentityFromContext(c)
	if err := h.authService.Logout(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	c.SetCookie(h.cookie("", -1))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

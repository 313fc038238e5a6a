package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fotolab/internal/auth"
	"fotolab/internal/errors"
)

// MessageResponse is the body of operations that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// IDResponse is returned by create operations.
type IDResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// respondError maps err to its HTTP status and generic body. Internal
// failures are logged with their cause; callers only see the sentinel text.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  "BAD_REQUEST",
	})
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(validationMessage(err))
	}
	return nil
}

// validationMessage lists the rejected fields by name.
func validationMessage(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return "invalid request body"
	}
	seen := make(map[string]struct{}, len(fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	return "invalid field: " + strings.Join(fields, ", ")
}

// callerID returns the session user id, or 0 when the request is anonymous.
func callerID(c echo.Context) uint {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		return 0
	}
	return id.UserID
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid " + name)
	}
	return uint(id), nil
}

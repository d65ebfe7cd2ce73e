package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"specialties/internal/auth"
	apperrors "specialties/internal/errors"
)

// ExperienceInput accepts the experience field as a JSON string or number.
// Whatever was sent is kept verbatim; interpretation happens in the panel.
type ExperienceInput string

// UnmarshalJSON implements json.Unmarshaler.
func (e *ExperienceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = ExperienceInput(s)
		return nil
	}
	*e = ExperienceInput(data)
	return nil
}

// currentUserID returns the user id of the verified token on the request.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "invalid token",
			Code:  "INVALID_TOKEN",
		})
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "invalid token",
			Code:  "INVALID_TOKEN",
		})
	}
	return id, nil
}

func csrfToken(c echo.Context) string {
	token, _ := c.Get("csrf").(string)
	return token
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "specialties/internal/errors"
	"specialties/internal/model"
	"specialties/internal/notify"
	"specialties/internal/panel"
)

// SpecialtyHandler exposes a provider's specialty panel as JSON.
type SpecialtyHandler struct {
	panels *panel.Registry
	toasts notify.Sink
}

// NewSpecialtyHandler creates a new specialty handler.
func NewSpecialtyHandler(panels *panel.Registry, toasts notify.Sink) *SpecialtyHandler {
	return &SpecialtyHandler{panels: panels, toasts: toasts}
}

// SpecialtyFormRequest carries the add form values.
type SpecialtyFormRequest struct {
	Category   string          `json:"category" form:"category" validate:"omitempty,category"`
	Experience ExperienceInput `json:"experience" form:"experience" swaggertype:"string"`
}

// PanelErrorResponse is an error together with the panel state after the failure.
type PanelErrorResponse struct {
	Error string     `json:"error"`
	Code  string     `json:"code"`
	View  panel.View `json:"view"`
}

// CategoryResponse is one entry of the category enumeration.
type CategoryResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (h *SpecialtyHandler) panelFor(c echo.Context) (*panel.Panel, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	return h.panels.Get(c.Request().Context(), userID), nil
}

func panelError(c echo.Context, p *panel.Panel, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, PanelErrorResponse{
		Error: httpErr.Message,
		Code:  httpErr.Code,
		View:  p.View(),
	})
}

// GetPanel godoc
// @Summary Get the specialties panel
// @Tags specialties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} panel.View
// @Failure 401 {object} errors.ErrorResponse
// @Router /specialties [get]
func (h *SpecialtyHandler) GetPanel(c echo.Context) error {
	p, err := h.panelFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p.View())
}

// UpdateForm godoc
// @Summary Update the pending add form
// @Tags specialties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SpecialtyFormRequest true "Form values"
// @Success 200 {object} panel.View
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /specialties/form [put]
func (h *SpecialtyHandler) UpdateForm(c echo.Context) error {
	req, err := bindForm(c)
	if err != nil {
		return err
	}
	p, err := h.panelFor(c)
	if err != nil {
		return err
	}
	p.SetForm(req.Category, string(req.Experience))
	return c.JSON(http.StatusOK, p.View())
}

// AddSpecialty godoc
// @Summary Add a specialty
// @Description Stores the category with the given years of experience. Empty or non-numeric experience is stored as 0.
// @Tags specialties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SpecialtyFormRequest true "Specialty data"
// @Success 201 {object} panel.View
// @Failure 400 {object} PanelErrorResponse
// @Failure 401 {object} PanelErrorResponse
// @Failure 409 {object} PanelErrorResponse
// @Failure 502 {object} PanelErrorResponse
// @Router /specialties [post]
func (h *SpecialtyHandler) AddSpecialty(c echo.Context) error {
	req, err := bindForm(c)
	if err != nil {
		return err
	}
	p, err := h.panelFor(c)
	if err != nil {
		return err
	}

	p.SetForm(req.Category, string(req.Experience))
	if err := p.Add(c.Request().Context()); err != nil {
		return panelError(c, p, err)
	}
	return c.JSON(http.StatusCreated, p.View())
}

// RemoveSpecialty godoc
// @Summary Remove a specialty
// @Tags specialties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Specialty ID"
// @Success 200 {object} panel.View
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} PanelErrorResponse
// @Failure 502 {object} PanelErrorResponse
// @Router /specialties/{id} [delete]
func (h *SpecialtyHandler) RemoveSpecialty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid specialty ID",
			Code:  "INVALID_UUID",
		})
	}
	p, err := h.panelFor(c)
	if err != nil {
		return err
	}

	if err := p.Remove(c.Request().Context(), id); err != nil {
		return panelError(c, p, err)
	}
	return c.JSON(http.StatusOK, p.View())
}

// ListCategories godoc
// @Summary List every service category
// @Tags specialties
// @Produce json
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func (h *SpecialtyHandler) ListCategories(c echo.Context) error {
	cats := model.Categories()
	out := make([]CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryResponse{Value: string(cat), Label: cat.Label()})
	}
	return c.JSON(http.StatusOK, out)
}

// DrainNotifications godoc
// @Summary Fetch and clear pending toasts
// @Tags specialties
// @Produce json
// @Security BearerAuth
// @Success 200 {array} notify.Toast
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *SpecialtyHandler) DrainNotifications(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	toasts, err := h.toasts.Drain(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to fetch notifications",
			Code:  "NOTIFICATIONS_FAILED",
		})
	}
	if toasts == nil {
		toasts = []notify.Toast{}
	}
	return c.JSON(http.StatusOK, toasts)
}

func bindForm(c echo.Context) (*SpecialtyFormRequest, error) {
	var req SpecialtyFormRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidCategory)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return &req, nil
}

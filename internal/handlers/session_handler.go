package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/casafile/api/internal/errors"
	"github.com/casafile/api/internal/middleware"
	"github.com/casafile/api/internal/models"
	"github.com/casafile/api/internal/occupancy"
	"github.com/casafile/api/internal/services"
	"github.com/casafile/api/internal/session"
	"github.com/casafile/api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SessionHandler handles the intake wizard's HTTP surface: session
// lifecycle, entity mutations, step navigation, and submission.
type SessionHandler struct {
	service services.FormService
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(service services.FormService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// Register wires the session routes onto the given router group.
func (h *SessionHandler) Register(v1 *gin.RouterGroup) {
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", h.Create)
		sessions.GET("/:id", h.Get)
		sessions.DELETE("/:id", h.Delete)
		sessions.POST("/:id/advance", h.Advance)
		sessions.POST("/:id/back", h.Back)
		sessions.GET("/:id/validate", h.Validate)
		sessions.POST("/:id/submit", h.Submit)

		sessions.POST("/:id/owners", h.AddOwner)
		sessions.PATCH("/:id/owners/:ownerId", h.UpdateOwner)
		sessions.DELETE("/:id/owners/:ownerId", h.RemoveOwner)

		sessions.POST("/:id/properties", h.AddProperty)
		sessions.PATCH("/:id/properties/:propertyId", h.UpdateProperty)
		sessions.DELETE("/:id/properties/:propertyId", h.RemoveProperty)
		sessions.PUT("/:id/properties/:propertyId/occupancy", h.UpdateOccupancy)

		sessions.PUT("/:id/assignments/:propertyId/:ownerId", h.UpsertAssignment)
	}
}

// SessionResponse wraps a session for API responses.
type SessionResponse struct {
	Session *session.Session `json:"session"`
}

// OwnerResponse carries an owner together with its current validation
// state, so clients can surface inline errors as the user types.
type OwnerResponse struct {
	Owner  *models.Owner           `json:"owner"`
	Errors []validation.FieldError `json:"errors"`
}

// PropertyResponse carries a property with its current validation state.
type PropertyResponse struct {
	Property *models.Property        `json:"property"`
	Errors   []validation.FieldError `json:"errors"`
}

// OccupancyResponse carries the rebalanced occupancy periods.
type OccupancyResponse struct {
	OccupancyPeriods []models.OccupancyPeriod `json:"occupancyPeriods"`
	TotalMonths      int                      `json:"totalMonths"`
}

// AssignmentResponse carries an assignment with the validation state of
// its property's whole assignment set.
type AssignmentResponse struct {
	Assignment *models.OwnerPropertyAssignment `json:"assignment"`
	Errors     []validation.FieldError         `json:"errors"`
}

// ValidateResponse is the result of a full-document validation pass.
type ValidateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors []validation.FieldError `json:"errors"`
}

// OccupancyEditRequest is one edit to a single occupancy period.
type OccupancyEditRequest struct {
	PeriodIndex int                     `json:"periodIndex" binding:"gte=0"`
	Status      *models.OccupancyStatus `json:"status,omitempty"`
	Months      *int                    `json:"months,omitempty" binding:"omitempty,gte=0,lte=12"`
}

// Create handles POST /api/v1/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to create session", err)
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{Session: sess})
}

// Get handles GET /api/v1/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess})
}

// Delete handles DELETE /api/v1/sessions/:id. The whole in-progress form
// is discarded; there is nothing durable to clean up.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Advance handles POST /api/v1/sessions/:id/advance. A 422 response with
// the step's field errors means navigation stays put.
func (h *SessionHandler) Advance(c *gin.Context) {
	sess, fieldErrs, err := h.service.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		apierrors.FieldValidationErrors(c, fieldErrs)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess})
}

// Back handles POST /api/v1/sessions/:id/back.
func (h *SessionHandler) Back(c *gin.Context) {
	sess, err := h.service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess})
}

// Validate handles GET /api/v1/sessions/:id/validate. It never changes
// state: the result is the full aggregate error list.
func (h *SessionHandler) Validate(c *gin.Context) {
	fieldErrs, err := h.service.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	if fieldErrs == nil {
		fieldErrs = []validation.FieldError{}
	}
	c.JSON(http.StatusOK, ValidateResponse{
		Valid:  len(fieldErrs) == 0,
		Errors: fieldErrs,
	})
}

// Submit handles POST /api/v1/sessions/:id/submit.
func (h *SessionHandler) Submit(c *gin.Context) {
	sess, fieldErrs, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		apierrors.FieldValidationErrors(c, fieldErrs)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess})
}

// AddOwner handles POST /api/v1/sessions/:id/owners.
func (h *SessionHandler) AddOwner(c *gin.Context) {
	owner, err := h.service.AddOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, OwnerResponse{Owner: owner, Errors: []validation.FieldError{}})
}

// UpdateOwner handles PATCH /api/v1/sessions/:id/owners/:ownerId.
// The response carries the owner's current field errors so clients can
// validate as the user types without blocking the edit itself.
func (h *SessionHandler) UpdateOwner(c *gin.Context) {
	var patch services.OwnerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.renderBindingError(c, err)
		return
	}

	owner, fieldErrs, err := h.service.UpdateOwner(c.Request.Context(), c.Param("id"), c.Param("ownerId"), patch)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	if fieldErrs == nil {
		fieldErrs = []validation.FieldError{}
	}
	c.JSON(http.StatusOK, OwnerResponse{Owner: owner, Errors: fieldErrs})
}

// RemoveOwner handles DELETE /api/v1/sessions/:id/owners/:ownerId.
// Assignments referencing the owner are swept away with it.
func (h *SessionHandler) RemoveOwner(c *gin.Context) {
	if err := h.service.RemoveOwner(c.Request.Context(), c.Param("id"), c.Param("ownerId")); err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddProperty handles POST /api/v1/sessions/:id/properties.
func (h *SessionHandler) AddProperty(c *gin.Context) {
	property, err := h.service.AddProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, PropertyResponse{Property: property, Errors: []validation.FieldError{}})
}

// UpdateProperty handles PATCH /api/v1/sessions/:id/properties/:propertyId.
func (h *SessionHandler) UpdateProperty(c *gin.Context) {
	var patch services.PropertyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.renderBindingError(c, err)
		return
	}

	property, fieldErrs, err := h.service.UpdateProperty(c.Request.Context(), c.Param("id"), c.Param("propertyId"), patch)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	if fieldErrs == nil {
		fieldErrs = []validation.FieldError{}
	}
	c.JSON(http.StatusOK, PropertyResponse{Property: property, Errors: fieldErrs})
}

// RemoveProperty handles DELETE /api/v1/sessions/:id/properties/:propertyId.
// The last remaining property cannot be removed.
func (h *SessionHandler) RemoveProperty(c *gin.Context) {
	if err := h.service.RemoveProperty(c.Request.Context(), c.Param("id"), c.Param("propertyId")); err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateOccupancy handles PUT /api/v1/sessions/:id/properties/:propertyId/occupancy.
// The edit goes through the allocator, which rebalances the period list
// so the year stays fully accounted for.
func (h *SessionHandler) UpdateOccupancy(c *gin.Context) {
	var req OccupancyEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindingError(c, err)
		return
	}

	periods, err := h.service.UpdateOccupancy(c.Request.Context(), c.Param("id"), c.Param("propertyId"), occupancy.Edit{
		PeriodIndex: req.PeriodIndex,
		Status:      req.Status,
		Months:      req.Months,
	})
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, OccupancyResponse{
		OccupancyPeriods: periods,
		TotalMonths:      occupancy.TotalMonths(periods),
	})
}

// UpsertAssignment handles PUT /api/v1/sessions/:id/assignments/:propertyId/:ownerId.
// The first write to a pair creates the assignment; later writes update
// it in place.
func (h *SessionHandler) UpsertAssignment(c *gin.Context) {
	var patch services.AssignmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.renderBindingError(c, err)
		return
	}

	assignment, fieldErrs, err := h.service.UpsertAssignment(
		c.Request.Context(), c.Param("id"), c.Param("propertyId"), c.Param("ownerId"), patch)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	if fieldErrs == nil {
		fieldErrs = []validation.FieldError{}
	}
	c.JSON(http.StatusOK, AssignmentResponse{Assignment: assignment, Errors: fieldErrs})
}

// renderBindingError maps a gin binding failure onto the standard error
// envelope.
func (h *SessionHandler) renderBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return
	}
	apierrors.BadRequest(c, "Invalid request body", nil)
}

// renderServiceError maps service-level sentinel errors onto HTTP
// responses.
func (h *SessionHandler) renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		apierrors.NotFound(c, "Session not found")
	case errors.Is(err, services.ErrOwnerNotFound):
		apierrors.NotFound(c, "Owner not found")
	case errors.Is(err, services.ErrPropertyNotFound):
		apierrors.NotFound(c, "Property not found")
	case errors.Is(err, services.ErrLastProperty):
		apierrors.Conflict(c, "At least one property must remain")
	case errors.Is(err, services.ErrNoFurtherStep):
		apierrors.Conflict(c, "Already at the last step")
	case errors.Is(err, services.ErrNotAtReview):
		apierrors.Conflict(c, "Submission is only possible from the review step")
	case errors.Is(err, services.ErrAlreadySubmitted):
		apierrors.Conflict(c, "Session already submitted")
	case errors.Is(err, session.ErrStoreFull):
		apierrors.Conflict(c, "Too many active sessions, try again later")
	default:
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Unhandled service error", err, nil)
		}
		apierrors.InternalServerError(c, "Failed to process request", err)
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/internal/dto"
	"github.com/techtoearth/onboarding-service/internal/service"
)

// OnboardingHandler exposes the profile-completion wizard endpoints.
type OnboardingHandler struct {
	onboarding   service.OnboardingService
	destinations Destinations
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboarding service.OnboardingService, destinations Destinations) *OnboardingHandler {
	return &OnboardingHandler{
		onboarding:   onboarding,
		destinations: destinations,
	}
}

// State returns the wizard position and prefilled answers
func (h *OnboardingHandler) State(c *gin.Context) {
	identityID, ok := h.identityID(c)
	if !ok {
		return
	}

	state, err := h.onboarding.State(c.Request.Context(), identityID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.stateResponse(state))
}

// SubmitBasics handles step 1 submission
func (h *OnboardingHandler) SubmitBasics(c *gin.Context) {
	identityID, ok := h.identityID(c)
	if !ok {
		return
	}

	var req dto.WizardBasicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	state, err := h.onboarding.SubmitBasics(c.Request.Context(), identityID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.stateResponse(state))
}

// SubmitInterests handles step 2 submission
func (h *OnboardingHandler) SubmitInterests(c *gin.Context) {
	identityID, ok := h.identityID(c)
	if !ok {
		return
	}

	var req dto.WizardInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	state, err := h.onboarding.SubmitInterests(c.Request.Context(), identityID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.stateResponse(state))
}

// SubmitBackground handles step 3 submission
func (h *OnboardingHandler) SubmitBackground(c *gin.Context) {
	identityID, ok := h.identityID(c)
	if !ok {
		return
	}

	var req dto.WizardBackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	state, err := h.onboarding.SubmitBackground(c.Request.Context(), identityID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.stateResponse(state))
}

// Complete handles the terminal wizard action
func (h *OnboardingHandler) Complete(c *gin.Context) {
	identityID, ok := h.identityID(c)
	if !ok {
		return
	}

	state, err := h.onboarding.Complete(c.Request.Context(), identityID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.stateResponse(state))
}

func (h *OnboardingHandler) identityID(c *gin.Context) (string, bool) {
	identityID, exists := c.Get("identity_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Identity not found in context",
		})
		return "", false
	}
	return identityID.(string), true
}

func (h *OnboardingHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFullNameRequired),
		errors.Is(err, service.ErrInterestRequired),
		errors.Is(err, service.ErrUnknownInterest),
		errors.Is(err, service.ErrMotivationRequired):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}

func (h *OnboardingHandler) stateResponse(state *service.WizardState) dto.WizardStateResponse {
	resp := dto.WizardStateResponse{
		Step:            state.Step,
		BackAllowed:     state.BackAllowed,
		Completed:       state.Completed,
		FullName:        state.Answers.FullName,
		DisplayName:     state.Answers.DisplayName,
		Location:        state.Answers.Location,
		CurrentRole:     state.Answers.CurrentRole,
		CareerInterests: state.Answers.CareerInterests,
		ExperienceLevel: state.Answers.ExperienceLevel,
		Motivation:      state.Answers.Motivation,
		Bio:             state.Answers.Bio,
		InterestCatalog: domain.InterestCatalog,
	}

	if state.Completed {
		resp.Destination = h.destinations.Path(state.Destination)
	}

	return resp
}

// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"

	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AudienceHandlerInterface defines the contract for audience handlers
type AudienceHandlerInterface interface {
	CreateAudience(c fiber.Ctx) error
	GetAudience(c fiber.Ctx) error
	UpdateAudience(c fiber.Ctx) error
	DeleteAudience(c fiber.Ctx) error
	ListAudiences(c fiber.Ctx) error
}

// AudienceHandler handles audience-related HTTP requests
type AudienceHandler struct {
	audienceFlow businessflow.AudienceFlow
	validator    *validator.Validate
}

// NewAudienceHandler creates a new audience handler
func NewAudienceHandler(audienceFlow businessflow.AudienceFlow) *AudienceHandler {
	return &AudienceHandler{
		audienceFlow: audienceFlow,
		validator:    validator.New(),
	}
}

// CreateAudience handles audience creation
// @Summary Create Audience
// @Tags Audiences
// @Accept json
// @Produce json
// @Param request body dto.CreateAudienceRequest true "Audience data"
// @Success 201 {object} dto.APIResponse{data=dto.AudienceDTO} "Audience created"
// @Failure 409 {object} dto.APIResponse "Name already in use"
// @Router /api/v1/audiences [post]
func (h *AudienceHandler) CreateAudience(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.CreateAudienceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.audienceFlow.CreateAudience(createRequestContext(c, "/api/v1/audiences"), &req, metadata)
	if err != nil {
		if businessflow.IsAudienceNameTaken(err) {
			return errorResponse(c, fiber.StatusConflict, "Audience name already in use", "AUDIENCE_NAME_TAKEN", nil)
		}
		if businessflow.IsAudienceLimitExceeded(err) {
			return errorResponse(c, fiber.StatusUnprocessableEntity, "Audience limit exceeded", "AUDIENCE_LIMIT_EXCEEDED", nil)
		}

		log.Println("Audience creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Audience creation failed", "AUDIENCE_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result.Audience)
}

// GetAudience returns one of the caller's audiences
// @Summary Get Audience
// @Tags Audiences
// @Produce json
// @Param uuid path string true "Audience UUID"
// @Success 200 {object} dto.APIResponse{data=dto.AudienceDTO} "Audience"
// @Failure 404 {object} dto.APIResponse "Audience not found"
// @Router /api/v1/audiences/{uuid} [get]
func (h *AudienceHandler) GetAudience(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	result, err := h.audienceFlow.GetAudience(createRequestContext(c, "/api/v1/audiences/:uuid"), c.Params("uuid"), userID)
	if err != nil {
		if businessflow.IsAudienceNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Audience not found", "AUDIENCE_NOT_FOUND", nil)
		}

		log.Println("Audience lookup failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Audience lookup failed", "AUDIENCE_LOOKUP_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Audience)
}

// UpdateAudience applies partial updates to one of the caller's audiences
// @Summary Update Audience
// @Tags Audiences
// @Accept json
// @Produce json
// @Param uuid path string true "Audience UUID"
// @Param request body dto.UpdateAudienceRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AudienceDTO} "Audience updated"
// @Failure 404 {object} dto.APIResponse "Audience not found"
// @Router /api/v1/audiences/{uuid} [put]
func (h *AudienceHandler) UpdateAudience(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.UpdateAudienceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UUID = c.Params("uuid")
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.audienceFlow.UpdateAudience(createRequestContext(c, "/api/v1/audiences/:uuid"), &req, metadata)
	if err != nil {
		if businessflow.IsAudienceNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Audience not found", "AUDIENCE_NOT_FOUND", nil)
		}
		if businessflow.IsAudienceNameTaken(err) {
			return errorResponse(c, fiber.StatusConflict, "Audience name already in use", "AUDIENCE_NAME_TAKEN", nil)
		}

		log.Println("Audience update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Audience update failed", "AUDIENCE_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Audience)
}

// DeleteAudience removes one of the caller's audiences
// @Summary Delete Audience
// @Tags Audiences
// @Produce json
// @Param uuid path string true "Audience UUID"
// @Success 200 {object} dto.APIResponse "Audience deleted"
// @Failure 404 {object} dto.APIResponse "Audience not found"
// @Router /api/v1/audiences/{uuid} [delete]
func (h *AudienceHandler) DeleteAudience(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.audienceFlow.DeleteAudience(createRequestContext(c, "/api/v1/audiences/:uuid"), c.Params("uuid"), userID, metadata)
	if err != nil {
		if businessflow.IsAudienceNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Audience not found", "AUDIENCE_NOT_FOUND", nil)
		}

		log.Println("Audience deletion failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Audience deletion failed", "AUDIENCE_DELETE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, nil)
}

// ListAudiences returns the caller's audiences with pagination
// @Summary List Audiences
// @Tags Audiences
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListAudiencesResponse} "Audiences"
// @Router /api/v1/audiences [get]
func (h *AudienceHandler) ListAudiences(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.ListAudiencesRequest{
		UserID:   userID,
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	result, err := h.audienceFlow.ListAudiences(createRequestContext(c, "/api/v1/audiences"), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}

		log.Println("Audience listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Audience listing failed", "AUDIENCE_LIST_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"audiences":  result.Audiences,
		"pagination": result.Pagination,
	})
}

// queryInt reads an integer query parameter with a fallback
func queryInt(c fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

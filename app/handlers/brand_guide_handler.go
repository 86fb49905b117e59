// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// BrandGuideHandlerInterface defines the contract for brand guide handlers
type BrandGuideHandlerInterface interface {
	CreateBrandGuide(c fiber.Ctx) error
	GetBrandGuide(c fiber.Ctx) error
	UpdateBrandGuide(c fiber.Ctx) error
	DeleteBrandGuide(c fiber.Ctx) error
}

// BrandGuideHandler handles brand-guide-related HTTP requests
type BrandGuideHandler struct {
	guideFlow businessflow.BrandGuideFlow
	validator *validator.Validate
}

// NewBrandGuideHandler creates a new brand guide handler
func NewBrandGuideHandler(guideFlow businessflow.BrandGuideFlow) *BrandGuideHandler {
	return &BrandGuideHandler{
		guideFlow: guideFlow,
		validator: validator.New(),
	}
}

// CreateBrandGuide handles brand guide creation
// @Summary Create Brand Guide
// @Tags BrandGuide
// @Accept json
// @Produce json
// @Param request body dto.CreateBrandGuideRequest true "Brand guide data"
// @Success 201 {object} dto.APIResponse{data=dto.BrandGuideResponse} "Brand guide created"
// @Failure 409 {object} dto.APIResponse "Brand guide already exists"
// @Router /api/v1/brand-guide [post]
func (h *BrandGuideHandler) CreateBrandGuide(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.CreateBrandGuideRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.guideFlow.CreateBrandGuide(createRequestContext(c, "/api/v1/brand-guide"), &req, metadata)
	if err != nil {
		if businessflow.IsBrandGuideAlreadyExists(err) {
			return errorResponse(c, fiber.StatusConflict, "Brand guide already exists", "BRAND_GUIDE_EXISTS", nil)
		}

		log.Println("Brand guide creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Brand guide creation failed", "BRAND_GUIDE_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result.BrandGuide)
}

// GetBrandGuide returns the caller's brand guide
// @Summary Get Brand Guide
// @Tags BrandGuide
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BrandGuideDTO} "Brand guide"
// @Failure 404 {object} dto.APIResponse "Brand guide not found"
// @Router /api/v1/brand-guide [get]
func (h *BrandGuideHandler) GetBrandGuide(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	result, err := h.guideFlow.GetBrandGuide(createRequestContext(c, "/api/v1/brand-guide"), userID)
	if err != nil {
		if businessflow.IsBrandGuideNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Brand guide not found", "BRAND_GUIDE_NOT_FOUND", nil)
		}

		log.Println("Brand guide lookup failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Brand guide lookup failed", "BRAND_GUIDE_LOOKUP_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.BrandGuide)
}

// UpdateBrandGuide applies partial updates to the caller's brand guide
// @Summary Update Brand Guide
// @Tags BrandGuide
// @Accept json
// @Produce json
// @Param request body dto.UpdateBrandGuideRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.BrandGuideDTO} "Brand guide updated"
// @Failure 404 {object} dto.APIResponse "Brand guide not found"
// @Router /api/v1/brand-guide [put]
func (h *BrandGuideHandler) UpdateBrandGuide(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.UpdateBrandGuideRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.guideFlow.UpdateBrandGuide(createRequestContext(c, "/api/v1/brand-guide"), &req, metadata)
	if err != nil {
		if businessflow.IsBrandGuideNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Brand guide not found", "BRAND_GUIDE_NOT_FOUND", nil)
		}

		log.Println("Brand guide update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Brand guide update failed", "BRAND_GUIDE_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.BrandGuide)
}

// DeleteBrandGuide removes the caller's brand guide
// @Summary Delete Brand Guide
// @Tags BrandGuide
// @Produce json
// @Success 200 {object} dto.APIResponse "Brand guide deleted"
// @Failure 404 {object} dto.APIResponse "Brand guide not found"
// @Router /api/v1/brand-guide [delete]
func (h *BrandGuideHandler) DeleteBrandGuide(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.guideFlow.DeleteBrandGuide(createRequestContext(c, "/api/v1/brand-guide"), userID, metadata)
	if err != nil {
		if businessflow.IsBrandGuideNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Brand guide not found", "BRAND_GUIDE_NOT_FOUND", nil)
		}

		log.Println("Brand guide deletion failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Brand guide deletion failed", "BRAND_GUIDE_DELETE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, nil)
}

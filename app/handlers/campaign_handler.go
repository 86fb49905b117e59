// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CampaignHandlerInterface defines the contract for campaign handlers
type CampaignHandlerInterface interface {
	CreateCampaign(c fiber.Ctx) error
	GetCampaign(c fiber.Ctx) error
	UpdateCampaign(c fiber.Ctx) error
	DeleteCampaign(c fiber.Ctx) error
	ListCampaigns(c fiber.Ctx) error
	ApproveCampaign(c fiber.Ctx) error
	ArchiveCampaign(c fiber.Ctx) error
	GenerateCampaign(c fiber.Ctx) error
	ExportCampaign(c fiber.Ctx) error
}

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	campaignFlow   businessflow.CampaignFlow
	generationFlow businessflow.GenerationFlow
	validator      *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow, generationFlow businessflow.GenerationFlow) *CampaignHandler {
	return &CampaignHandler{
		campaignFlow:   campaignFlow,
		generationFlow: generationFlow,
		validator:      validator.New(),
	}
}

// campaignErrorResponse maps campaign validation sentinels to HTTP errors.
// Returns false when the error was not recognized.
func campaignErrorResponse(c fiber.Ctx, err error) (error, bool) {
	switch {
	case businessflow.IsCampaignNotFound(err):
		return errorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil), true
	case businessflow.IsCampaignNotEditable(err):
		return errorResponse(c, fiber.StatusConflict, "Campaign cannot be modified in current status", "CAMPAIGN_NOT_EDITABLE", nil), true
	case businessflow.IsCampaignLimitExceeded(err):
		return errorResponse(c, fiber.StatusUnprocessableEntity, "Campaign limit exceeded", "CAMPAIGN_LIMIT_EXCEEDED", nil), true
	case businessflow.IsBrandGuideRequired(err):
		return errorResponse(c, fiber.StatusUnprocessableEntity, "A brand guide is required", "BRAND_GUIDE_REQUIRED", nil), true
	case businessflow.IsTooManySegments(err):
		return errorResponse(c, fiber.StatusBadRequest, "Too many segments", "TOO_MANY_SEGMENTS", nil), true
	case businessflow.IsTooManyChannels(err):
		return errorResponse(c, fiber.StatusBadRequest, "Too many channels", "TOO_MANY_CHANNELS", nil), true
	case businessflow.IsDuplicateChannelType(err):
		return errorResponse(c, fiber.StatusBadRequest, "Duplicate channel type", "DUPLICATE_CHANNEL_TYPE", nil), true
	case businessflow.IsDuplicateSegmentAudience(err):
		return errorResponse(c, fiber.StatusBadRequest, "Duplicate audience in segments", "DUPLICATE_SEGMENT_AUDIENCE", nil), true
	case businessflow.IsForeignAudienceReference(err):
		return errorResponse(c, fiber.StatusBadRequest, "Segment references an unknown audience", "FOREIGN_AUDIENCE_REFERENCE", nil), true
	case businessflow.IsStartDateAfterEndDate(err):
		return errorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil), true
	default:
		return nil, false
	}
}

// CreateCampaign handles campaign creation
// @Summary Create Campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param request body dto.CreateCampaignRequest true "Campaign data"
// @Success 201 {object} dto.APIResponse{data=dto.CampaignDTO} "Campaign created"
// @Failure 422 {object} dto.APIResponse "Brand guide required or limit exceeded"
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.CreateCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.CreateCampaign(createRequestContext(c, "/api/v1/campaigns"), &req, metadata)
	if err != nil {
		if resp, handled := campaignErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Campaign creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Campaign creation failed", "CAMPAIGN_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result.Campaign)
}

// GetCampaign returns one of the caller's campaigns
// @Summary Get Campaign
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse{data=dto.CampaignDTO} "Campaign"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{uuid} [get]
func (h *CampaignHandler) GetCampaign(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.GetCampaignRequest{UUID: c.Params("uuid"), UserID: userID}

	result, err := h.campaignFlow.GetCampaign(createRequestContext(c, "/api/v1/campaigns/:uuid"), &req)
	if err != nil {
		if resp, handled := campaignErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Campaign lookup failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Campaign lookup failed", "CAMPAIGN_LOOKUP_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Campaign)
}

// UpdateCampaign applies partial updates to one of the caller's campaigns
// @Summary Update Campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Param request body dto.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CampaignDTO} "Campaign updated"
// @Failure 409 {object} dto.APIResponse "Campaign not editable"
// @Router /api/v1/campaigns/{uuid} [put]
func (h *CampaignHandler) UpdateCampaign(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.UpdateCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UUID = c.Params("uuid")
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.UpdateCampaign(createRequestContext(c, "/api/v1/campaigns/:uuid"), &req, metadata)
	if err != nil {
		if resp, handled := campaignErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Campaign update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Campaign update failed", "CAMPAIGN_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Campaign)
}

// DeleteCampaign removes one of the caller's campaigns and its assets
// @Summary Delete Campaign
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse "Campaign deleted"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{uuid} [delete]
func (h *CampaignHandler) DeleteCampaign(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.GetCampaignRequest{UUID: c.Params("uuid"), UserID: userID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.DeleteCampaign(createRequestContext(c, "/api/v1/campaigns/:uuid"), &req, metadata)
	if err != nil {
		if resp, handled := campaignErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Campaign deletion failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Campaign deletion failed", "CAMPAIGN_DELETE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"deleted_assets": result.DeletedAssets,
	})
}

// ListCampaigns returns the caller's campaigns with filters and pagination
// @Summary List Campaigns
// @Tags Campaigns
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param status query string false "Filter by status"
// @Param search query string false "Filter by name substring"
// @Success 200 {object} dto.APIResponse{data=dto.ListCampaignsResponse} "Campaigns"
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.ListCampaignsRequest{
		UserID:   userID,
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if status := c.Query("status"); status != "" {
		req.Status = &status
	}
	if search := c.Query("search"); search != "" {
		req.Search = &search
	}

	result, err := h.campaignFlow.ListCampaigns(createRequestContext(c, "/api/v1/campaigns"), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}

		log.Println("Campaign listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Campaign listing failed", "CAMPAIGN_LIST_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"campaigns":  result.Campaigns,
		"pagination": result.Pagination,
	})
}

// ApproveCampaign transitions a generated campaign to approved
// @Summary Approve Campaign
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse{data=dto.ChangeCampaignStatusResponse} "Campaign approved"
// @Failure 409 {object} dto.APIResponse "Invalid status transition"
// @Router /api/v1/campaigns/{uuid}/approve [patch]
func (h *CampaignHandler) ApproveCampaign(c fiber.Ctx) error {
	return h.changeStatus(c, "approve")
}

// ArchiveCampaign transitions a campaign to archived
// @Summary Archive Campaign
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse{data=dto.ChangeCampaignStatusResponse} "Campaign archived"
// @Failure 409 {object} dto.APIResponse "Invalid status transition"
// @Router /api/v1/campaigns/{uuid}/archive [patch]
func (h *CampaignHandler) ArchiveCampaign(c fiber.Ctx) error {
	return h.changeStatus(c, "archive")
}

func (h *CampaignHandler) changeStatus(c fiber.Ctx, action string) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.ChangeCampaignStatusRequest{UUID: c.Params("uuid"), UserID: userID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx := createRequestContext(c, "/api/v1/campaigns/:uuid/"+action)

	var result *dto.ChangeCampaignStatusResponse
	var err error
	if action == "approve" {
		result, err = h.campaignFlow.ApproveCampaign(ctx, &req, metadata)
	} else {
		result, err = h.campaignFlow.ArchiveCampaign(ctx, &req, metadata)
	}
	if err != nil {
		if businessflow.IsInvalidStatusTransition(err) {
			return errorResponse(c, fiber.StatusConflict, "Invalid status transition", "INVALID_STATUS_TRANSITION", nil)
		}
		if resp, handled := campaignErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Campaign status change failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Campaign status change failed", "CAMPAIGN_STATUS_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"status": result.Status,
	})
}

// GenerateCampaign runs the bulk asset generation pipeline
// @Summary Generate Campaign Assets
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse{data=dto.GenerateCampaignResponse} "Generation completed"
// @Failure 422 {object} dto.APIResponse "Campaign not ready for generation"
// @Router /api/v1/campaigns/{uuid}/generate [post]
func (h *CampaignHandler) GenerateCampaign(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.GenerateCampaignRequest{UUID: c.Params("uuid"), UserID: userID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx := createRequestContextWithTimeout(c, "/api/v1/campaigns/:uuid/generate", generationRequestTimeout)

	result, err := h.generationFlow.GenerateCampaignAssets(ctx, &req, metadata)
	if err != nil {
		if businessflow.IsNoSegmentsConfigured(err) {
			return errorResponse(c, fiber.StatusUnprocessableEntity, "Campaign has no segments", "NO_SEGMENTS_CONFIGURED", nil)
		}
		if businessflow.IsNoEnabledChannels(err) {
			return errorResponse(c, fiber.StatusUnprocessableEntity, "Campaign has no enabled channels", "NO_ENABLED_CHANNELS", nil)
		}
		if resp, handled := campaignErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Campaign generation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Campaign generation failed", "CAMPAIGN_GENERATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"status":          result.Status,
		"expected_assets": result.ExpectedAssets,
		"created_assets":  result.CreatedAssets,
		"assets":          result.Assets,
	})
}

// ExportCampaign returns the campaign and all of its assets as JSON or XLSX
// @Summary Export Campaign
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Param format query string false "Export format: json (default) or xlsx"
// @Success 200 {object} dto.APIResponse{data=dto.ExportCampaignResponse} "Export document"
// @Failure 400 {object} dto.APIResponse "Unsupported format"
// @Router /api/v1/campaigns/{uuid}/export [get]
func (h *CampaignHandler) ExportCampaign(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	format := c.Query("format", "json")
	req := dto.ExportCampaignRequest{UUID: c.Params("uuid"), UserID: userID, Format: format}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx := createRequestContext(c, "/api/v1/campaigns/:uuid/export")

	switch format {
	case "json":
		result, err := h.campaignFlow.ExportCampaign(ctx, &req, metadata)
		if err != nil {
			if resp, handled := campaignErrorResponse(c, err); handled {
				return resp
			}

			log.Println("Campaign export failed", err)
			return errorResponse(c, fiber.StatusInternalServerError, "Campaign export failed", "EXPORT_FAILED", nil)
		}
		return successResponse(c, fiber.StatusOK, "Campaign exported successfully", result)

	case "xlsx":
		data, filename, err := h.campaignFlow.ExportCampaignXLSX(ctx, &req, metadata)
		if err != nil {
			if resp, handled := campaignErrorResponse(c, err); handled {
				return resp
			}

			log.Println("Campaign export failed", err)
			return errorResponse(c, fiber.StatusInternalServerError, "Campaign export failed", "EXPORT_FAILED", nil)
		}
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		return c.Send(data)

	default:
		return errorResponse(c, fiber.StatusBadRequest, "Unsupported export format", "UNSUPPORTED_EXPORT_FORMAT", nil)
	}
}

// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AssetHandlerInterface defines the contract for asset handlers
type AssetHandlerInterface interface {
	ListAssets(c fiber.Ctx) error
	GetAsset(c fiber.Ctx) error
	UpdateAsset(c fiber.Ctx) error
	RegenerateAsset(c fiber.Ctx) error
	UpdateVersion(c fiber.Ctx) error
	ApproveVersion(c fiber.Ctx) error
}

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetFlow      businessflow.AssetFlow
	generationFlow businessflow.GenerationFlow
	validator      *validator.Validate
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetFlow businessflow.AssetFlow, generationFlow businessflow.GenerationFlow) *AssetHandler {
	return &AssetHandler{
		assetFlow:      assetFlow,
		generationFlow: generationFlow,
		validator:      validator.New(),
	}
}

// assetErrorResponse maps asset sentinels to HTTP errors. Returns false
// when the error was not recognized.
func assetErrorResponse(c fiber.Ctx, err error) (error, bool) {
	switch {
	case businessflow.IsAssetNotFound(err):
		return errorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil), true
	case businessflow.IsVersionNotFound(err):
		return errorResponse(c, fiber.StatusNotFound, "Version not found", "VERSION_NOT_FOUND", nil), true
	case businessflow.IsContentShapeMismatch(err):
		return errorResponse(c, fiber.StatusBadRequest, "Edits do not match the asset's channel", "CONTENT_SHAPE_MISMATCH", nil), true
	case businessflow.IsConcurrentUpdate(err):
		return errorResponse(c, fiber.StatusConflict, "Asset was modified concurrently, retry", "CONCURRENT_UPDATE", nil), true
	default:
		return nil, false
	}
}

// ListAssets returns every asset of one of the caller's campaigns
// @Summary List Campaign Assets
// @Tags Assets
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse{data=dto.ListAssetsResponse} "Assets"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{uuid}/assets [get]
func (h *AssetHandler) ListAssets(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.ListAssetsRequest{CampaignUUID: c.Params("uuid"), UserID: userID}

	result, err := h.assetFlow.ListAssets(createRequestContext(c, "/api/v1/campaigns/:uuid/assets"), &req)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}

		log.Println("Asset listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Asset listing failed", "ASSET_LIST_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"assets": result.Assets,
	})
}

// GetAsset returns one asset owned by the caller
// @Summary Get Asset
// @Tags Assets
// @Produce json
// @Param uuid path string true "Asset UUID"
// @Success 200 {object} dto.APIResponse{data=dto.AssetDTO} "Asset"
// @Failure 404 {object} dto.APIResponse "Asset not found"
// @Router /api/v1/assets/{uuid} [get]
func (h *AssetHandler) GetAsset(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.GetAssetRequest{UUID: c.Params("uuid"), UserID: userID}

	result, err := h.assetFlow.GetAsset(createRequestContext(c, "/api/v1/assets/:uuid"), &req)
	if err != nil {
		if resp, handled := assetErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Asset lookup failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Asset lookup failed", "ASSET_LOOKUP_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Asset)
}

// UpdateAsset renames an asset
// @Summary Update Asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param uuid path string true "Asset UUID"
// @Param request body dto.UpdateAssetRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AssetDTO} "Asset updated"
// @Failure 409 {object} dto.APIResponse "Concurrent update"
// @Router /api/v1/assets/{uuid} [put]
func (h *AssetHandler) UpdateAsset(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.UpdateAssetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UUID = c.Params("uuid")
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.assetFlow.UpdateAsset(createRequestContext(c, "/api/v1/assets/:uuid"), &req, metadata)
	if err != nil {
		if resp, handled := assetErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Asset update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Asset update failed", "ASSET_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Asset)
}

// RegenerateAsset produces one additional version for an asset
// @Summary Regenerate Asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param uuid path string true "Asset UUID"
// @Param request body dto.RegenerateAssetRequest true "Regeneration options"
// @Success 200 {object} dto.APIResponse{data=dto.AssetDTO} "Asset regenerated"
// @Failure 502 {object} dto.APIResponse "Generation failed"
// @Router /api/v1/assets/{uuid}/regenerate [post]
func (h *AssetHandler) RegenerateAsset(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.RegenerateAssetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UUID = c.Params("uuid")
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx := createRequestContextWithTimeout(c, "/api/v1/assets/:uuid/regenerate", generationRequestTimeout)

	result, err := h.generationFlow.RegenerateAsset(ctx, &req, metadata)
	if err != nil {
		if businessflow.IsGenerationFailed(err) {
			// The wrapped error carries the upstream failure reason
			return errorResponse(c, fiber.StatusBadGateway, err.Error(), "GENERATION_FAILED", nil)
		}
		if businessflow.IsBrandGuideRequired(err) || businessflow.IsAudienceNotFound(err) {
			return errorResponse(c, fiber.StatusUnprocessableEntity, "Asset context is no longer complete", "ASSET_CONTEXT_INCOMPLETE", nil)
		}
		if resp, handled := assetErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Asset regeneration failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Asset regeneration failed", "ASSET_REGENERATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Asset)
}

// UpdateVersion applies field-level content edits to one version
// @Summary Update Asset Version
// @Tags Assets
// @Accept json
// @Produce json
// @Param uuid path string true "Asset UUID"
// @Param versionId path string true "Version ID"
// @Param request body dto.UpdateVersionRequest true "Content edits"
// @Success 200 {object} dto.APIResponse{data=dto.AssetVersionDTO} "Version updated"
// @Failure 400 {object} dto.APIResponse "Content shape mismatch"
// @Router /api/v1/assets/{uuid}/versions/{versionId} [put]
func (h *AssetHandler) UpdateVersion(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	var req dto.UpdateVersionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.AssetUUID = c.Params("uuid")
	req.VersionID = c.Params("versionId")
	req.UserID = userID

	if errs := validateStruct(h.validator, &req); errs != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", errs)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.assetFlow.UpdateVersion(createRequestContext(c, "/api/v1/assets/:uuid/versions/:versionId"), &req, metadata)
	if err != nil {
		if resp, handled := assetErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Version update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Version update failed", "VERSION_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result.Version)
}

// ApproveVersion marks one version approved
// @Summary Approve Asset Version
// @Tags Assets
// @Produce json
// @Param uuid path string true "Asset UUID"
// @Param versionId path string true "Version ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApproveVersionResponse} "Version approved"
// @Failure 404 {object} dto.APIResponse "Version not found"
// @Router /api/v1/assets/{uuid}/versions/{versionId}/approve [patch]
func (h *AssetHandler) ApproveVersion(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}

	req := dto.ApproveVersionRequest{
		AssetUUID: c.Params("uuid"),
		VersionID: c.Params("versionId"),
		UserID:    userID,
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.assetFlow.ApproveVersion(createRequestContext(c, "/api/v1/assets/:uuid/versions/:versionId/approve"), &req, metadata)
	if err != nil {
		if resp, handled := assetErrorResponse(c, err); handled {
			return resp
		}

		log.Println("Version approval failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Version approval failed", "VERSION_APPROVAL_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"version":           result.Version,
		"is_fully_approved": result.IsFullyApproved,
	})
}

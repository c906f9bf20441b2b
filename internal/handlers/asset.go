// internal/handlers/asset.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/models"
	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// GET /assets
// Filters: sub_category_id, category_id, area_id, plant_id, team_id, status,
// asset_code, search. Paginated.
func (h *AssetHandler) GetAssets(c *gin.Context) {
	filter := &services.AssetFilter{
		SubCategoryID: parseUintQuery(c, "sub_category_id"),
		CategoryID:    parseUintQuery(c, "category_id"),
		AreaID:        parseUintQuery(c, "area_id"),
		PlantID:       parseUintQuery(c, "plant_id"),
		AssetCode:     c.Query("asset_code"),
		Search:        c.Query("search"),
	}
	if raw := c.Query("team_id"); raw != "" {
		filter.TeamID = &raw
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AssetStatus(raw)
		if !status.Valid() {
			utils.BadRequestResponse(c, "Invalid status: "+raw)
			return
		}
		filter.Status = &status
	}

	params := utils.GetPaginationParams(c)
	assets, total, err := h.assetService.ListAssets(filter, &params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessListResponse(c, assets, int(total))
}

// GET /assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	asset, err := h.assetService.GetAsset(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, asset)
}

// GET /assets/code/:code
func (h *AssetHandler) GetAssetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.BadRequestResponse(c, "Invalid asset code")
		return
	}

	asset, err := h.assetService.GetAssetByCode(code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, asset)
}

// POST /assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req services.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	asset, err := h.assetService.CreateAsset(&req, utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, "Asset created successfully", asset)
}

// PUT /assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	var req services.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	asset, err := h.assetService.UpdateAsset(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Asset updated successfully", asset)
}

// DELETE /assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	if err := h.assetService.DeleteAsset(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Asset deleted successfully", nil)
}

// PUT /assets/:id/specifications
func (h *AssetHandler) SetAssetSpecifications(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	var req struct {
		Specifications []services.SpecValueInput `json:"specifications" validate:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	specs, err := h.assetService.SetSpecifications(id, req.Specifications, utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Asset specifications saved successfully", specs)
}

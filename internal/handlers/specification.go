// internal/handlers/specification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/models"
	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type SpecificationHandler struct {
	specService *services.SpecificationService
}

func NewSpecificationHandler(specService *services.SpecificationService) *SpecificationHandler {
	return &SpecificationHandler{specService: specService}
}

// GET /spec-categories?sub_category_id=1&status=active
func (h *SpecificationHandler) GetSpecCategories(c *gin.Context) {
	var status *models.AssetStatus
	if raw := c.Query("status"); raw != "" {
		s := models.AssetStatus(raw)
		if !s.Valid() {
			utils.BadRequestResponse(c, "Invalid status: "+raw)
			return
		}
		status = &s
	}

	specs, err := h.specService.ListSpecCategories(parseUintQuery(c, "sub_category_id"), status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessListResponse(c, specs, len(specs))
}

// GET /spec-categories/:id
func (h *SpecificationHandler) GetSpecCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid specification category ID")
		return
	}

	spec, err := h.specService.GetSpecCategory(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, spec)
}

// POST /spec-categories
func (h *SpecificationHandler) CreateSpecCategory(c *gin.Context) {
	var req services.CreateSpecCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	spec, err := h.specService.CreateSpecCategory(&req, utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, "Specification category created successfully", spec)
}

// PUT /spec-categories/:id
func (h *SpecificationHandler) UpdateSpecCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid specification category ID")
		return
	}

	var req services.UpdateSpecCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	spec, err := h.specService.UpdateSpecCategory(id, &req, utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Specification category updated successfully", spec)
}

// DELETE /spec-categories/:id
func (h *SpecificationHandler) DeleteSpecCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid specification category ID")
		return
	}

	if err := h.specService.DeleteSpecCategory(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Specification category deleted successfully", nil)
}

// PUT /sub-categories/:id/spec-categories/reorder
func (h *SpecificationHandler) ReorderSpecCategories(c *gin.Context) {
	subCategoryID, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid sub category ID")
		return
	}

	var req struct {
		Orders []services.ReorderEntry `json:"orders" validate:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	specs, err := h.specService.Reorder(subCategoryID, req.Orders, utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Specification categories reordered successfully", specs)
}

// internal/handlers/area.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type AreaHandler struct {
	areaService *services.AreaService
}

func NewAreaHandler(areaService *services.AreaService) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

// GET /areas?plant_id=1
func (h *AreaHandler) GetAreas(c *gin.Context) {
	areas, err := h.areaService.ListAreas(parseUintQuery(c, "plant_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessListResponse(c, areas, len(areas))
}

// GET /areas/:id
func (h *AreaHandler) GetArea(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid area ID")
		return
	}

	area, err := h.areaService.GetArea(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, area)
}

// POST /areas
func (h *AreaHandler) CreateArea(c *gin.Context) {
	var req services.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	area, err := h.areaService.CreateArea(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, "Area created successfully", area)
}

// PUT /areas/:id
func (h *AreaHandler) UpdateArea(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid area ID")
		return
	}

	var req services.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	area, err := h.areaService.UpdateArea(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Area updated successfully", area)
}

// DELETE /areas/:id
func (h *AreaHandler) DeleteArea(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid area ID")
		return
	}

	if err := h.areaService.DeleteArea(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Area deleted successfully", nil)
}

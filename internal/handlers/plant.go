// internal/handlers/plant.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type PlantHandler struct {
	plantService *services.PlantService
}

func NewPlantHandler(plantService *services.PlantService) *PlantHandler {
	return &PlantHandler{plantService: plantService}
}

// GET /plants
func (h *PlantHandler) GetPlants(c *gin.Context) {
	plants, err := h.plantService.ListPlants()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessListResponse(c, plants, len(plants))
}

// GET /plants/:id
func (h *PlantHandler) GetPlant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid plant ID")
		return
	}

	plant, err := h.plantService.GetPlant(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, plant)
}

// POST /plants
func (h *PlantHandler) CreatePlant(c *gin.Context) {
	var req services.CreatePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	plant, err := h.plantService.CreatePlant(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, "Plant created successfully", plant)
}

// PUT /plants/:id
func (h *PlantHandler) UpdatePlant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid plant ID")
		return
	}

	var req services.UpdatePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	plant, err := h.plantService.UpdatePlant(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Plant updated successfully", plant)
}

// DELETE /plants/:id
func (h *PlantHandler) DeletePlant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid plant ID")
		return
	}

	if err := h.plantService.DeletePlant(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Plant deleted successfully", nil)
}

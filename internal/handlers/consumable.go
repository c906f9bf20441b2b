// internal/handlers/consumable.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/models"
	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type ConsumableHandler struct {
	consumableService *services.ConsumableService
}

func NewConsumableHandler(consumableService *services.ConsumableService) *ConsumableHandler {
	return &ConsumableHandler{consumableService: consumableService}
}

// GET /consumable-categories?type=consumable&active=true
func (h *ConsumableHandler) GetConsumableCategories(c *gin.Context) {
	var consumableType *models.ConsumableType
	if raw := c.Query("type"); raw != "" {
		t := models.ConsumableType(raw)
		if !t.Valid() {
			utils.BadRequestResponse(c, "Invalid consumable type: "+raw)
			return
		}
		consumableType = &t
	}
	activeOnly := c.Query("active") == "true"

	categories, err := h.consumableService.ListConsumableCategories(consumableType, activeOnly)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessListResponse(c, categories, len(categories))
}

// GET /consumable-categories/:id
func (h *ConsumableHandler) GetConsumableCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid consumable category ID")
		return
	}

	category, err := h.consumableService.GetConsumableCategory(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, category)
}

// POST /consumable-categories
func (h *ConsumableHandler) CreateConsumableCategory(c *gin.Context) {
	var req services.CreateConsumableCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	category, err := h.consumableService.CreateConsumableCategory(&req, utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, "Consumable category created successfully", category)
}

// PUT /consumable-categories/:id
func (h *ConsumableHandler) UpdateConsumableCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid consumable category ID")
		return
	}

	var req services.UpdateConsumableCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	category, err := h.consumableService.UpdateConsumableCategory(id, &req, utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Consumable category updated successfully", category)
}

// DELETE /consumable-categories/:id
func (h *ConsumableHandler) DeleteConsumableCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid consumable category ID")
		return
	}

	if err := h.consumableService.DeleteConsumableCategory(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Consumable category deleted successfully", nil)
}

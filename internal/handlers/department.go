// internal/handlers/department.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// GET /departments
func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	departments, err := h.departmentService.ListDepartments()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessListResponse(c, departments, len(departments))
}

// GET /departments/:name
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.BadRequestResponse(c, "Invalid department name")
		return
	}

	department, err := h.departmentService.GetDepartment(name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, department)
}

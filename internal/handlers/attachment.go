// internal/handlers/attachment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// GET /assets/:id/attachments
func (h *AttachmentHandler) GetAttachments(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	attachments, err := h.attachmentService.ListAttachments(assetID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessListResponse(c, attachments, len(attachments))
}

// POST /assets/:id/attachments (multipart: file, description)
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.UploadAttachment(
		assetID, file, header, c.PostForm("description"), utils.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, "Attachment uploaded successfully", attachment)
}

// GET /assets/:id/attachments/:attachmentId/download
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}
	attachmentID, ok := parseIDParam(c, "attachmentId")
	if !ok {
		utils.BadRequestResponse(c, "Invalid attachment ID")
		return
	}

	url, err := h.attachmentService.DownloadURL(assetID, attachmentID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"url": url})
}

// POST /assets/:id/image (multipart: file)
func (h *AttachmentHandler) UploadAssetImage(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}
	defer file.Close()

	url, err := h.attachmentService.UploadAssetImage(assetID, file, header)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Asset image updated successfully", gin.H{"image_url": url})
}

// DELETE /assets/:id/attachments/:attachmentId
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}
	attachmentID, ok := parseIDParam(c, "attachmentId")
	if !ok {
		utils.BadRequestResponse(c, "Invalid attachment ID")
		return
	}

	if err := h.attachmentService.DeleteAttachment(assetID, attachmentID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessMessageResponse(c, "Attachment deleted successfully", nil)
}

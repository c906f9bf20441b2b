// internal/handlers/sync.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/jobs"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type SyncHandler struct {
	syncer *jobs.IdentitySyncer
}

func NewSyncHandler(syncer *jobs.IdentitySyncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// POST /sync/identity — manual trigger for the identity sync.
func (h *SyncHandler) RunIdentitySync(c *gin.Context) {
	result, err := h.syncer.Run(c.Request.Context())
	if err != nil {
		utils.HandleError(c, apperrors.Upstream("Identity sync failed", err))
		return
	}
	utils.SuccessMessageResponse(c, "Identity sync completed", result)
}

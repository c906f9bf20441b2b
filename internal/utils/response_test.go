// internal/utils/response_test.go
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkpharma/asset-registry/internal/apperrors"
)

func handleErr(t *testing.T, err error) (int, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, err)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleErrorMapsClassifiedKinds(t *testing.T) {
	status, resp := handleErr(t, apperrors.NotFound("Plant not found"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Plant not found", resp.Message)
	assert.Equal(t, "NOT_FOUND", resp.Error)

	status, resp = handleErr(t, apperrors.Conflict("Plant code already exists"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", resp.Error)
}

func TestHandleErrorHidesUnclassifiedDetail(t *testing.T) {
	raw := fmt.Errorf("failed to fetch plants: driver: bad connection")
	status, resp := handleErr(t, raw)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error", resp.Message)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error)
	assert.NotContains(t, resp.Message, "driver")
}

func TestHandleErrorKeepsClassifiedInternalMessage(t *testing.T) {
	// The wrapped cause stays server-side; only the safe message goes out.
	status, resp := handleErr(t, apperrors.Internal("Error fetching plant", fmt.Errorf("driver: bad connection")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Error fetching plant", resp.Message)
	assert.NotContains(t, resp.Message, "driver")
}
